package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Strings(key string, values []string) Field {
	return Field{Key: key, Value: values}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Analysis field helpers

func RunID(id string) Field {
	return String("run_id", id)
}

func ComponentIndex(i int) Field {
	return Int("component", i)
}

// Verdict records a verdict tag such as "k33"
func Verdict(tag string) Field {
	return String("verdict", tag)
}

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(m int) Field {
	return Int("edges", m)
}

func Source(s string) Field {
	return String("source", s)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
