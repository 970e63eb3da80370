package app

import (
	"os"
	"sync"
	"sync/atomic"
)

const testModeEnv = "RIHLAH_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

// InTestMode reports whether the process should skip runtime side effects,
// such as binding the HTTP listener. The flag is read once per process from
// RIHLAH_TEST_MODE.
func InTestMode() bool {
	testModeOnce.Do(func() {
		testModeFlag.Store(os.Getenv(testModeEnv) == "1")
	})
	return testModeFlag.Load()
}
