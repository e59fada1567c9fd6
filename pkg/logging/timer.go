package logging

import "time"

// Timer measures an operation and logs it with its latency when ended.
type Timer struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *Timer {
	return &Timer{logger: logger, msg: msg, start: time.Now(), fields: fields}
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation at info level.
func (t *Timer) End(extra ...Field) {
	t.logger.Info(t.msg, t.collect(extra)...)
}

// EndDebug logs the operation at debug level.
func (t *Timer) EndDebug(extra ...Field) {
	t.logger.Debug(t.msg, t.collect(extra)...)
}

// EndError logs the operation as failed.
func (t *Timer) EndError(err error, extra ...Field) {
	t.logger.Error(t.msg, append(t.collect(extra), Error(err))...)
}

func (t *Timer) collect(extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(time.Since(t.start)))
}
