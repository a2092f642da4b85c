package exitcode

const (
	Success       = 0
	UsageError    = 1
	InputError    = 2
	ArtifactError = 3
	ServeError    = 4
)
