package commands

const (
	_etc = `C:\ProgramData\uhppoted`
	_var = `C:\ProgramData\uhppoted`

	DEFAULT_WORKDIR     = _var + `\reports`
	DEFAULT_CREDENTIALS = _etc + `\reports\.google\credentials.json`
)
