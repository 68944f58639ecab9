package commands

const (
	_etc = "/usr/local/etc/com.github.uhppoted"
	_var = "/usr/local/var/com.github.uhppoted"

	DEFAULT_WORKDIR     = _var + "/reports"
	DEFAULT_CREDENTIALS = _etc + "/reports/.google/credentials.json"
)
