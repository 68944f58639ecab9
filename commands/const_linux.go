package commands

const (
	_etc = "/usr/local/etc/uhppoted"
	_var = "/usr/local/var/uhppoted"

	DEFAULT_WORKDIR     = _var + "/reports"
	DEFAULT_CREDENTIALS = _etc + "/reports/.google/credentials.json"
)
