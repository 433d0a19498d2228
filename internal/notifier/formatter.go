package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"StockStats/internal/model"
)

// FormatRunSummary renders a run's outcomes as a Telegram HTML message.
func FormatRunSummary(at time.Time, outcomes []model.Outcome) string {
	var b strings.Builder

	ok := 0
	for _, o := range outcomes {
		if o.Status == model.StatusOK {
			ok++
		}
	}
	b.WriteString(fmt.Sprintf("📈 <b>StockStats</b> | %s\n", at.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%d/%d tickers updated\n\n", ok, len(outcomes)))

	for _, o := range outcomes {
		if o.Status == model.StatusOK && o.Stats != nil {
			b.WriteString(fmt.Sprintf("✅ <b>%s</b> min %.2f | max %.2f | avg %.2f | median %.2f\n",
				html.EscapeString(o.Ticker), o.Stats.Min, o.Stats.Max, o.Stats.Avg, o.Stats.Median))
			continue
		}
		reason := string(o.Status)
		if o.Err != nil {
			reason = o.Err.Error()
		}
		b.WriteString(fmt.Sprintf("❌ <b>%s</b> %s\n", html.EscapeString(o.Ticker), html.EscapeString(reason)))
	}
	return b.String()
}
