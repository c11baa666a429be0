package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/synclog/internal/core/synclog"
)

// NameReader is implemented by stores that can report the profile name
// recorded inside a stored log, independent of the name it is stored under.
type NameReader interface {
	StoredName(ctx context.Context, profile string) (string, error)
}

// LogsCheck verifies every stored sync log can be read back.
type LogsCheck struct {
	store      synclog.Store
	timeFormat string
	now        func() time.Time
}

// NewLogsCheck creates a new stored-logs check.
func NewLogsCheck(store synclog.Store, timeFormat string) *LogsCheck {
	return &LogsCheck{store: store, timeFormat: timeFormat, now: time.Now}
}

func (c *LogsCheck) Name() string {
	return "Sync Logs"
}

func (c *LogsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	names, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "List logs",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if len(names) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Logs",
			Status: StatusPass,
			Detail: "no logs recorded yet",
		})
		return result
	}

	namer, _ := c.store.(NameReader)

	for _, name := range names {
		l, err := c.store.Get(ctx, name)
		if err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  name,
				Status: StatusFail,
				Detail: err.Error(),
			})
			continue
		}

		if namer != nil {
			stored, err := namer.StoredName(ctx, name)
			if err == nil && stored != name {
				result.Items = append(result.Items, CheckItem{
					Label:  name,
					Status: StatusFail,
					Detail: fmt.Sprintf("file records profile %q", stored),
				})
				continue
			}
		}

		detail := fmt.Sprintf("%d entries", l.Len())
		if last, ok := l.Last(); ok && last.HasSyncTime() {
			age := c.now().Sub(last.SyncTime).Round(time.Second)
			detail += fmt.Sprintf(", last entry %s ago (%s)", age, last.Major)
		}

		best, ok := l.LastSuccessful()
		if !ok {
			result.Items = append(result.Items, CheckItem{
				Label:  name,
				Status: StatusWarn,
				Detail: detail + ", no successful sync recorded",
			})
			continue
		}

		result.Items = append(result.Items, CheckItem{
			Label:  name,
			Status: StatusPass,
			Detail: detail + ", last success " + best.SyncTime.Local().Format(c.timeFormat),
		})
	}

	return result
}
