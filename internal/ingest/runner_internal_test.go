package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/statsboard/pkg/logger"
	"github.com/okian/statsboard/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

type debugEntry struct {
	msg    string
	fields []logger.Field
}

// recordingLogger keeps debug entries and drops the rest.
type recordingLogger struct {
	debug *[]debugEntry
}

func (l recordingLogger) Info(context.Context, string, ...logger.Field)  {}
func (l recordingLogger) Error(context.Context, string, ...logger.Field) {}
func (l recordingLogger) Warn(context.Context, string, ...logger.Field)  {}
func (l recordingLogger) Fatal(context.Context, string, ...logger.Field) {}
func (l recordingLogger) Debug(_ context.Context, msg string, fields ...logger.Field) {
	*l.debug = append(*l.debug, debugEntry{msg: msg, fields: fields})
}
func (l recordingLogger) Named(string) logger.Logger         { return l }
func (l recordingLogger) With(...logger.Field) logger.Logger { return l }

func TestRecordPage(t *testing.T) {
	Convey("Given a logger that records debug entries", t, func() {
		var entries []debugEntry
		log := recordingLogger{debug: &entries}

		Convey("When a known outcome is counted", func() {
			recordPage(context.Background(), log, "mlb", metrics.OutcomeOK)

			Convey("Then nothing is logged", func() {
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When the metric rejects the outcome", func() {
			recordPage(context.Background(), log, "mlb", "timeout")

			Convey("Then the rejection is logged at debug level", func() {
				So(entries, ShouldHaveLength, 1)
				So(entries[0].msg, ShouldEqual, "page metric not recorded")
				var logged error
				for _, f := range entries[0].fields {
					if err, ok := f.Value.(error); ok {
						logged = err
					}
				}
				So(errors.Is(logged, metrics.ErrUnknownOutcome), ShouldBeTrue)
			})
		})
	})
}
