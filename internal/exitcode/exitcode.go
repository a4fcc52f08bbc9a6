package exitcode

const (
	Success         = 0
	UsageError      = 1
	AdminFetchError = 2
	LogFetchError   = 3
	WriteError      = 4
	DBConnError     = 5
	ArchiveError    = 6
)
