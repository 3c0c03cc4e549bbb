package logging_test

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"

	"github.com/Directly-web/direkli-landing/logging"
)

func TestNew(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		desc          string
		debug         bool
		expectedDebug bool
	}{{
		desc:          "info level hides debug entries",
		debug:         false,
		expectedDebug: false,
	}, {
		desc:          "debug level shows debug entries",
		debug:         true,
		expectedDebug: true,
	}}

	for _, test := range tests {
		test := test

		c.Run(test.desc, func(c *qt.C) {
			c.Parallel()

			var buf bytes.Buffer
			logger := logging.New(&buf, test.debug)
			logger.Debug("step", zap.String("path", "index.html"))
			logger.Info("done")
			c.Assert(logger.Sync(), qt.IsNil)

			c.Assert(buf.String(), qt.Matches, `(?s).*INFO\s+done.*`)
			if test.expectedDebug {
				c.Assert(buf.String(), qt.Matches, `(?s).*DEBUG\s+step\s+\{"path": "index.html"\}.*`)
			} else {
				c.Assert(buf.String(), qt.Not(qt.Matches), `(?s).*DEBUG.*`)
			}
		})
	}
}
