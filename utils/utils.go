package utils

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

var sourceRoot string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get the module source directory with various operating systems
	sourceRoot = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)

	s := filepath.Dir(dir)
	if filepath.Base(s) != "gorm.io" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

// CallerFrame retrieves the first relevant stack frame outside of the module's internal code.
func CallerFrame() runtime.Frame {
	// 3 skips runtime.Callers, CallerFrame and the logger method calling it
	pcs := [13]uintptr{}
	length := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:length])
	for frame, more := frames.Next(); more; frame, more = frames.Next() {
		if !strings.HasPrefix(frame.File, sourceRoot) || strings.HasSuffix(frame.File, "_test.go") {
			return frame
		}
	}
	return runtime.Frame{}
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	frame := CallerFrame()
	if frame.PC == 0 {
		return ""
	}
	return frame.File + ":" + strconv.FormatInt(int64(frame.Line), 10)
}

// TypeName returns a readable, package qualified name for t. Pointers and
// slices keep their prefix, e.g. "*blog.Author" or "[]blog.Author".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeName(t.Elem())
	case reflect.Slice:
		return "[]" + TypeName(t.Elem())
	}

	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// Indirect strips pointer indirections from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
