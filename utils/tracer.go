package utils

import (
	"github.com/Luismorlan/blogmux/utils/dotenv"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/sirupsen/logrus"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

func datadogEnv() string {
	if dotenv.IsProdEnv() {
		return "production"
	}
	return "development"
}

// StartTracer starts the Datadog tracer for the given service.
func StartTracer(serviceName string) {
	tracer.Start(
		tracer.WithService(serviceName),
		tracer.WithEnv(datadogEnv()),
	)

	Log.WithFields(
		logrus.Fields{"service": serviceName, "env": datadogEnv()},
	).Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}

// StartProfiler starts the Datadog profiler with CPU and heap profiles.
func StartProfiler(serviceName string) error {
	return profiler.Start(
		profiler.WithService(serviceName),
		profiler.WithEnv(datadogEnv()),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
			// The profiles below are disabled by
			// default to keep overhead low, but
			// can be enabled as needed.
			// profiler.BlockProfile,
			// profiler.MutexProfile,
			// profiler.GoroutineProfile,
		),
	)
}

// Stop profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}
