package platform

// Package platform contains OS integration glue: config file discovery next to
// the working directory or the executable, and small filesystem helpers.
