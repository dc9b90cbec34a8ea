package logger

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	// Imports the Stackdriver Logging client package.
	gce "cloud.google.com/go/logging"
	"golang.org/x/net/context"
)

// DefaultLogName is used when Init is never called or called with an empty name.
const DefaultLogName = "UpperLimitNote"

var (
	mutex        sync.Mutex
	isLoggerGCE  bool
	loggerClient *gce.Client
	loggerInfo   *log.Logger
	loggerWarn   *log.Logger
	loggerError  *log.Logger
	loggerPanic  *gce.Logger
	logName      = DefaultLogName
)

// Init switches logging to Stackdriver under the given project.
// Stackdriver is used only on linux with a non-empty projectID,
// everything else logs to stdout through the builtin logger.
func Init(projectID, name string) {
	mutex.Lock()
	defer mutex.Unlock()

	if name != "" {
		logName = name
	}
	if projectID == "" || runtime.GOOS != "linux" {
		isLoggerGCE = false
		return
	}

	client, err := gce.NewClient(context.Background(), projectID)
	if err != nil {
		resetLocked()
		log.Printf("Failed to create client: %v, using builtin logger", err)
		return
	}
	loggerClient = client

	loggerInfo = client.Logger(logName).StandardLogger(gce.Info)
	loggerWarn = client.Logger(logName).StandardLogger(gce.Warning)
	loggerError = client.Logger(logName).StandardLogger(gce.Error)
	loggerPanic = client.Logger(logName)

	isLoggerGCE = true
}

func resetLocked() {
	loggerClient = nil
	loggerInfo = nil
	loggerWarn = nil
	loggerError = nil
	loggerPanic = nil
	isLoggerGCE = false
}

// IsLoggerGCE provides interface if current logger is GCE
func IsLoggerGCE() bool {
	return isLoggerGCE
}

// Close flushes and closes GCE Client, falling back to the builtin logger
func Close() {
	mutex.Lock()
	defer mutex.Unlock()

	if loggerClient != nil {
		loggerClient.Close()
	}
	resetLocked()
}

// Info prints logs as this format: [INFO]
func Info(format string, v ...interface{}) {
	handleLog(loggerInfo, "INFO", format, v...)
}

// Warn prints logs as this format: [WARN]
func Warn(format string, v ...interface{}) {
	handleLog(loggerWarn, "WARN", format, v...)
}

// Error prints logs as this format: [ERROR]
func Error(format string, v ...interface{}) {
	handleLog(loggerError, "ERROR", format, v...)
}

// Panic prints logs as this format: [PANIC], then panics
func Panic(format string, v ...interface{}) {
	handlePanicLog(format, v...)
}

func handleLog(logHandle *log.Logger, severity, format string, v ...interface{}) {
	msgFormat := "[" + logName + "][" + severity + "] " + format

	// Log to Stdout
	if logHandle == nil {
		log.Printf(msgFormat, v...)
		return
	}
	logHandle.Printf(msgFormat, v...)
}

func handlePanicLog(format string, v ...interface{}) {
	const severity = gce.Critical
	msgFormat := "[" + logName + "][PANIC] " + format

	if loggerPanic == nil {
		log.Panicf(msgFormat, v...)
		return
	}

	s := fmt.Sprintf(format, v...)
	loggerPanic.Log(gce.Entry{
		Severity: severity,
		Payload:  s,
	})
	loggerPanic.Flush()

	panic("Killed by logger.handlePanicLog")
}
