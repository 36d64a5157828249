package notifier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ChainSentinel/internal/collector"
	"ChainSentinel/internal/model"
)

// FormatReport formats the signal table as a Telegram HTML message.
func FormatReport(rep *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔬 <b>ChainSentinel</b> | %s | %s\n\n",
		rep.Asset, rep.GeneratedAt.Format("2006-01-02 15:04")))

	for _, row := range rep.Rows {
		b.WriteString(formatRow(rep, row))
	}

	b.WriteString(fmt.Sprintf("\n💱 %s/%s: %.2f", strings.ToUpper(rep.Currency), rep.RateCurrency, rep.Rate))
	if rep.RateFallback {
		b.WriteString(" ⚠️ (fallback rate, conversion source unreachable)")
	}
	b.WriteString("\n")
	return b.String()
}

func formatRow(rep *model.Report, row model.IndicatorResult) string {
	if !row.Available {
		return fmt.Sprintf("%s %s: <i>unavailable</i>\n", rowIcon(row.Name), row.Name)
	}

	value := formatValue(rep, row)
	return fmt.Sprintf("%s %s: %s → <b>%s</b>\n", rowIcon(row.Name), row.Name, value, row.Signal)
}

func formatValue(rep *model.Report, row model.IndicatorResult) string {
	switch row.Name {
	case model.IndicatorAltSeason:
		return fmt.Sprintf("%.0f%%", row.Value)
	case model.IndicatorMVRVZ, model.IndicatorPuell, model.IndicatorVDD:
		return fmt.Sprintf("%.2f", row.Value)
	case model.IndicatorNUPL:
		return fmt.Sprintf("%.3f", row.Value)
	case model.IndicatorRealized:
		s := fmt.Sprintf("$%.0f (%s %.0f)", row.Value, rep.RateCurrency, row.Value*rep.Rate)
		if row.Secondary != nil {
			s += fmt.Sprintf(" %+.1f%%", *row.Secondary*100)
		}
		return s
	case model.IndicatorS2F:
		s := fmt.Sprintf("%.1f", row.Value)
		if row.Secondary != nil {
			s += fmt.Sprintf(" (model $%.0f)", *row.Secondary)
		}
		return s
	case model.IndicatorRainbow:
		return fmt.Sprintf("$%.0f (%s %.0f)", row.Value, rep.RateCurrency, row.Value*rep.Rate)
	default:
		return fmt.Sprintf("%.2f", row.Value)
	}
}

func rowIcon(name model.Indicator) string {
	switch name {
	case model.IndicatorAltSeason:
		return "🎪"
	case model.IndicatorMVRVZ:
		return "📊"
	case model.IndicatorNUPL:
		return "💰"
	case model.IndicatorPuell:
		return "⛏"
	case model.IndicatorRealized:
		return "💎"
	case model.IndicatorS2F:
		return "⛓"
	case model.IndicatorRainbow:
		return "🌈"
	case model.IndicatorVDD:
		return "📉"
	default:
		return "•"
	}
}

// FormatFetchFailure formats a refresh failure with the specific
// upstream error kind so the user sees what actually went wrong.
func FormatFetchFailure(err error) string {
	var fe *collector.FetchError
	if errors.As(err, &fe) {
		var hint string
		switch fe.Kind {
		case collector.Unauthorized:
			hint = "check the API key"
		case collector.RateLimited:
			hint = "API quota exhausted, try again later"
		case collector.NetworkError:
			hint = "upstream unreachable"
		case collector.MalformedResponse:
			hint = "unexpected API payload"
		}
		return fmt.Sprintf("❌ <b>Refresh failed</b> (%s)\n%s: %s", fe.Kind, fe.Resource, hint)
	}
	return fmt.Sprintf("❌ <b>Refresh failed</b>: %v", err)
}

// FormatStatus formats a short liveness summary.
func FormatStatus(asset string, lastRefresh time.Time, lastErr error) string {
	var b strings.Builder
	b.WriteString("📦 <b>ChainSentinel status</b>\n\n")
	b.WriteString(fmt.Sprintf("asset: %s\n", asset))
	if lastRefresh.IsZero() {
		b.WriteString("last refresh: never\n")
	} else {
		b.WriteString(fmt.Sprintf("last refresh: %s\n", lastRefresh.Format("2006-01-02 15:04:05")))
	}
	if lastErr != nil {
		b.WriteString(fmt.Sprintf("last error: %v\n", lastErr))
	}
	return b.String()
}
