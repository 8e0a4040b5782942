package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/timectx"
	"smartfarm-assistant/pkg/vntext"
)

const (
	// nearestTolerance is the maximum delta for a history record to count as
	// an exact hit for an absolute-time query.
	nearestTolerance = 60 * time.Second

	recordTimeField = "dateTime"
	timeLabelFormat = "15:04 02/01/2006"
)

// resolveSensorQuery answers a sensor read: time context plus targets plus a
// live or historical fetch, formatted with units and threshold annotations.
func (uc implUseCase) resolveSensorQuery(ctx context.Context, ip chatbot.ResolveInput, texts []string, lang vntext.Language) string {
	tc := uc.timeParser.Resolve(texts, time.Now())
	targets := uc.sensors.Match(texts)

	// A device question with no named sensor is a status lookup, not a
	// reading.
	if len(targets) == 0 && vntext.ContainsAny(texts, deviceStatusKeywords...) {
		return uc.resolveDeviceStatus(ctx, texts, tc, lang)
	}

	if len(targets) == 0 {
		targets = uc.sensors.All()
	}

	switch tc.Kind {
	case timectx.KindRelative:
		return uc.answerRelative(ctx, targets, tc.Relative, lang)
	case timectx.KindAbsolute:
		return uc.answerAbsolute(ctx, targets, tc.Absolute, lang)
	case timectx.KindUnsupportedPast:
		return tr(lang,
			"Mình chưa xác định được thời điểm bạn hỏi, vui lòng nói rõ thời gian cụ thể (ví dụ: \"5 phút trước\" hoặc \"lúc 11:30\").",
			"I could not pin down the time you asked about, please clarify (for example \"5 minutes ago\" or \"at 11:30\").")
	default:
		return uc.answerCurrent(ctx, ip, targets, lang)
	}
}

func (uc implUseCase) answerCurrent(ctx context.Context, ip chatbot.ResolveInput, targets []catalog.Sensor, lang vntext.Language) string {
	snapshot := ip.SensorData
	if len(snapshot) == 0 {
		var err error
		snapshot, err = uc.telemetry.Latest(ctx)
		if err != nil {
			uc.l.Errorf(ctx, "chatbot.usecase.answerCurrent: %v", err)
			return tr(lang,
				"Không tìm thấy dữ liệu cảm biến hiện tại, vui lòng thử lại sau.",
				"No data found for the current readings, please try again later.")
		}
	}

	header := tr(lang, "📊 Dữ liệu cảm biến hiện tại:", "📊 Current sensor readings:")
	return formatReadings(header, targets, snapshot, lang)
}

func (uc implUseCase) answerRelative(ctx context.Context, targets []catalog.Sensor, rel *timectx.RelativeWindow, lang vntext.Language) string {
	records, err := uc.telemetry.Range(ctx, repository.RangeOptions{
		From:  rel.WindowStart,
		To:    rel.WindowEnd,
		Order: repository.OrderDesc,
		Limit: 1,
	})
	if err != nil {
		uc.l.Errorf(ctx, "chatbot.usecase.answerRelative: %v", err)
	}

	when := relativeLabel(rel, lang)
	if len(records) == 0 {
		return tr(lang,
			fmt.Sprintf("Không tìm thấy dữ liệu khoảng %s.", when),
			fmt.Sprintf("No data found around %s.", when))
	}

	record := records[0]
	header := tr(lang,
		fmt.Sprintf("⏰ Dữ liệu khoảng %s:", when),
		fmt.Sprintf("⏰ Readings around %s:", when))
	if ts, ok := record.Time(recordTimeField); ok {
		header = tr(lang,
			fmt.Sprintf("⏰ Dữ liệu khoảng %s (lúc %s):", when, ts.Format(timeLabelFormat)),
			fmt.Sprintf("⏰ Readings around %s (at %s):", when, ts.Format(timeLabelFormat)))
	}
	return formatReadings(header, targets, record, lang)
}

func (uc implUseCase) answerAbsolute(ctx context.Context, targets []catalog.Sensor, abs *timectx.AbsoluteInstant, lang vntext.Language) string {
	record, actual, found := uc.nearestAround(ctx, abs.RequestedAt)
	if !found {
		return tr(lang,
			fmt.Sprintf("Không tìm thấy dữ liệu gần thời điểm %s.", abs.RequestedDescription),
			fmt.Sprintf("No data found near %s.", abs.RequestedDescription))
	}

	abs.ActualDescription = actual.Format(timeLabelFormat)

	delta := actual.Sub(abs.RequestedAt)
	if delta < 0 {
		delta = -delta
	}

	var header string
	if delta <= nearestTolerance {
		header = tr(lang,
			fmt.Sprintf("⏰ Dữ liệu lúc %s:", abs.RequestedDescription),
			fmt.Sprintf("⏰ Readings at %s:", abs.RequestedDescription))
	} else {
		header = tr(lang,
			fmt.Sprintf("⏰ Không có bản ghi đúng lúc %s, gần nhất là lúc %s:", abs.RequestedDescription, abs.ActualDescription),
			fmt.Sprintf("⏰ No record exactly at %s, the nearest one is at %s:", abs.RequestedDescription, abs.ActualDescription))
	}
	return formatReadings(header, targets, record, lang)
}

// nearestAround queries both sides of the instant concurrently, joins, and
// picks the candidate with the smallest absolute delta.
func (uc implUseCase) nearestAround(ctx context.Context, at time.Time) (model.Record, time.Time, bool) {
	var (
		wg             sync.WaitGroup
		before, after  model.Record
		errBef, errAft error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		before, errBef = uc.telemetry.Nearest(ctx, repository.NearestOptions{At: at, Direction: repository.DirectionBefore})
	}()
	go func() {
		defer wg.Done()
		after, errAft = uc.telemetry.Nearest(ctx, repository.NearestOptions{At: at, Direction: repository.DirectionAfter})
	}()
	wg.Wait()

	for _, err := range []error{errBef, errAft} {
		if err != nil && !errors.Is(err, repository.ErrNoRecord) {
			uc.l.Warnf(ctx, "chatbot.usecase.nearestAround: %v", err)
		}
	}

	var (
		best      model.Record
		bestTime  time.Time
		bestDelta time.Duration
		found     bool
	)
	for _, candidate := range []model.Record{before, after} {
		if candidate == nil {
			continue
		}
		ts, ok := candidate.Time(recordTimeField)
		if !ok {
			continue
		}
		delta := ts.Sub(at)
		if delta < 0 {
			delta = -delta
		}
		if !found || delta < bestDelta {
			best, bestTime, bestDelta, found = candidate, ts, delta, true
		}
	}
	return best, bestTime, found
}

// resolveDeviceStatus reports on/off state for one named device or all of
// them. Status has no historical semantics, so any non-current time context is
// rejected.
func (uc implUseCase) resolveDeviceStatus(ctx context.Context, texts []string, tc timectx.TimeContext, lang vntext.Language) string {
	if !tc.IsCurrent() {
		return tr(lang,
			"Trạng thái thiết bị chỉ xem được ở thời điểm hiện tại, không có lịch sử trạng thái.",
			"Device status is only available for the present moment, there is no status history.")
	}

	registered, err := uc.devices.ListActive(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "chatbot.usecase.resolveDeviceStatus: %v", err)
		return tr(lang,
			"Không tìm thấy dữ liệu thiết bị, vui lòng thử lại sau.",
			"No data found for devices, please try again later.")
	}

	if named, ok := catalog.MatchDevice(catalog.MergeDevices(nil, registered), texts); ok {
		for _, d := range registered {
			if d.ID == named.ID {
				return deviceStatusLine(d, lang)
			}
		}
	}

	if len(registered) == 0 {
		return tr(lang,
			"Hiện chưa có thiết bị nào được đăng ký.",
			"There are no registered devices yet.")
	}

	lines := make([]string, 0, len(registered)+1)
	lines = append(lines, tr(lang, "🔌 Trạng thái thiết bị:", "🔌 Device status:"))
	for _, d := range registered {
		lines = append(lines, deviceStatusLine(d, lang))
	}
	return strings.Join(lines, "\n")
}

func deviceStatusLine(d model.DeviceStatus, lang vntext.Language) string {
	return fmt.Sprintf("• %s: %s", d.Name, onOffLabel(d.On, lang))
}

// formatReadings renders each requested sensor from the record. Sensors with
// no value in the record are listed separately instead of being dropped.
func formatReadings(header string, targets []catalog.Sensor, record model.Record, lang vntext.Language) string {
	var present, missing []string
	for _, s := range targets {
		line, ok := readingLine(s, record, lang)
		if !ok {
			missing = append(missing, s.Label(string(lang)))
			continue
		}
		present = append(present, line)
	}

	var sb strings.Builder
	sb.WriteString(header)
	for _, line := range present {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	if len(present) == 0 {
		sb.WriteString("\n")
		sb.WriteString(tr(lang,
			"Không tìm thấy dữ liệu cho các cảm biến được hỏi.",
			"No data found for the requested sensors."))
	}
	if len(missing) > 0 && len(present) > 0 {
		sb.WriteString("\n")
		sb.WriteString(tr(lang,
			"Chưa có giá trị cho: "+strings.Join(missing, ", "),
			"No value yet for: "+strings.Join(missing, ", ")))
	}
	return sb.String()
}

func readingLine(s catalog.Sensor, record model.Record, lang vntext.Language) (string, bool) {
	if s.Status {
		label, ok := statusValue(record, s.Key, lang)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s %s: %s", s.Icon, s.Label(string(lang)), label), true
	}

	v, ok := record.Float(s.Key)
	if !ok {
		return "", false
	}
	line := fmt.Sprintf("%s %s: %.1f%s", s.Icon, s.Label(string(lang)), v, s.Unit)
	if s.Bands != nil {
		level := s.Bands.Classify(v)
		if lang == vntext.LanguageEnglish {
			line += fmt.Sprintf(" (%s)", level.LabelEN())
		} else {
			line += fmt.Sprintf(" (%s)", level.LabelVI())
		}
	}
	return line, true
}

// statusValue maps whatever shape the store kept for an on/off field to a
// binary label: booleans and numbers by truthiness, strings by on/off cues.
func statusValue(record model.Record, key string, lang vntext.Language) (string, bool) {
	if v, ok := record.Bool(key); ok {
		return onOffLabel(v, lang), true
	}
	if s, ok := record[key].(string); ok {
		normalized := vntext.Normalize(s)
		switch {
		case strings.Contains(normalized, "bat") || strings.Contains(normalized, "on"):
			return onOffLabel(true, lang), true
		case strings.Contains(normalized, "tat") || strings.Contains(normalized, "off"):
			return onOffLabel(false, lang), true
		}
	}
	return "", false
}

func onOffLabel(on bool, lang vntext.Language) string {
	if on {
		return tr(lang, "Bật", "On")
	}
	return tr(lang, "Tắt", "Off")
}

func relativeLabel(rel *timectx.RelativeWindow, lang vntext.Language) string {
	if lang == vntext.LanguageEnglish {
		unit := string(rel.Unit)
		if rel.Value > 1 {
			unit += "s"
		}
		return fmt.Sprintf("%d %s ago", rel.Value, unit)
	}
	units := map[timectx.Unit]string{
		timectx.UnitMinute: "phút",
		timectx.UnitHour:   "giờ",
		timectx.UnitDay:    "ngày",
	}
	return fmt.Sprintf("%d %s trước", rel.Value, units[rel.Unit])
}

// tr picks the English rendering only for detected-English messages;
// Vietnamese is the house default, mixed included.
func tr(lang vntext.Language, vi, en string) string {
	if lang == vntext.LanguageEnglish {
		return en
	}
	return vi
}
