package config

// NewPolicyForTest creates a Policy config for testing purposes
func NewPolicyForTest(path string) *Policy {
	return &Policy{path: path}
}

// NewFrameworksForTest creates a Frameworks config for testing purposes
func NewFrameworksForTest(paths ...string) *Frameworks {
	return &Frameworks{paths: paths}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(webhookURL, minLevel string) *Slack {
	return &Slack{webhookURL: webhookURL, minLevel: minLevel}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend string) *Repository {
	return &Repository{backend: backend}
}
