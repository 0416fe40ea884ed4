package utils

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

var sourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// <module>/utils/utils.go
	sourceDir = filepath.ToSlash(filepath.Dir(filepath.Dir(file))) + "/"
}

func callerOutsideModule(file string) bool {
	return !strings.HasPrefix(file, sourceDir) || strings.HasSuffix(file, "_test.go")
}

// FileWithLineNum return the file name and line number of the first caller outside this module
func FileWithLineNum() string {
	frame := CallerFrame()
	if frame.File == "" {
		return ""
	}
	return frame.File + ":" + strconv.FormatInt(int64(frame.Line), 10)
}

// CallerFrame returns the first stack frame outside this module
func CallerFrame() runtime.Frame {
	pcs := [15]uintptr{}
	// skip runtime.Callers and CallerFrame
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if frame.File != "" && callerOutsideModule(frame.File) {
			return frame
		}
		if !more {
			break
		}
	}
	return runtime.Frame{}
}
