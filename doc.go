// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-reports renders tabular reports to Google Sheets.

A report is a table of grouped parts, each part being a heading row followed by its data rows and
any nested parts. Rendering a report writes the rows to a sheet and applies the report formatting
rules using at most two batched API calls: one for the cell values and one for the structural
requests (formats, merges, column widths and row heights).

uhppoted-app-reports supports the following commands:

  - render, to create a new spreadsheet from a TSV file and share it with a domain or user
  - add-sheet, to render a TSV file to a new sheet in an existing spreadsheet
  - version, to display the current version
*/
package reports
