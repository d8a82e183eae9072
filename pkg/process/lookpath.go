package process

import "os/exec"

// lookPath wraps exec.LookPath, isolated so that resolver.go's platform logic
// can be tested independently of the real PATH environment variable.
var lookPath = exec.LookPath
