package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/vntext"
)

// deviceTokenRe finds generic "device N" mentions where the quantity may be a
// digit or a number word; matches are canonicalized to "deviceN".
var deviceTokenRe = regexp.MustCompile(`\b(?:device|thiet bi)\s*(\d+|mot|hai|ba|bon|nam|sau|bay|tam|chin|muoi|one|two|three|four|five|six|seven|eight|nine|ten)\b`)

var deviceNumberWords = map[string]string{
	"mot": "1", "hai": "2", "ba": "3", "bon": "4", "nam": "5",
	"sau": "6", "bay": "7", "tam": "8", "chin": "9", "muoi": "10",
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
}

// resolveControl builds and executes actuation commands: a rule-based fast
// path for one verb plus one device, and an AI-assisted path for anything
// ambiguous or multi-target.
func (uc implUseCase) resolveControl(ctx context.Context, message string, texts []string, lang vntext.Language) string {
	devices := uc.deviceCatalog(ctx)
	texts = canonicalizeDeviceTokens(texts)

	hasOn := vntext.ContainsAnyWord(texts, onVerbs...)
	hasOff := vntext.ContainsAnyWord(texts, offVerbs...)
	mentioned := mentionedDevices(devices, texts)

	var ruleCommand *model.ControlCommand
	if len(mentioned) == 1 && hasOn != hasOff {
		cmd := commandFor(mentioned[0], actionFor(hasOn))
		ruleCommand = &cmd
	}

	needsAI := len(mentioned) > 1 ||
		(hasOn && hasOff && len(mentioned) > 0) ||
		(hasConnector(texts) && len(mentioned) > 0) ||
		(len(mentioned) > 0 && ruleCommand == nil)

	var commands []model.ControlCommand
	if needsAI {
		commands = uc.parseCommandsWithAI(ctx, message, devices)
	}
	if len(commands) == 0 && ruleCommand != nil {
		commands = []model.ControlCommand{*ruleCommand}
	}

	if len(commands) == 0 {
		return tr(lang,
			"Mình không nhận ra thiết bị nào trong yêu cầu của bạn. Các thiết bị hiện có: "+deviceNames(devices)+".",
			"I could not match any device in your request. Available devices: "+deviceNames(devices)+".")
	}

	commands = dedupCommands(commands)

	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, uc.executeCommand(ctx, cmd, lang))
	}
	return strings.Join(lines, "\n")
}

// parseCommandsWithAI asks the model to map the utterance onto the device
// catalog under a strict JSON contract. Invalid or unmatched entries are
// dropped with a warning rather than failing the request.
func (uc implUseCase) parseCommandsWithAI(ctx context.Context, message string, devices []catalog.Device) []model.ControlCommand {
	prompt := fmt.Sprintf(promptParseCommands, catalogLines(devices), message)

	raw, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.parseCommandsWithAI: generate: %v", err)
		return nil
	}

	var parsed struct {
		Commands []struct {
			Target string `json:"target"`
			Action string `json:"action"`
		} `json:"commands"`
	}
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &parsed); err != nil {
		uc.l.Warnf(ctx, "chatbot.usecase.parseCommandsWithAI: decode: %v", err)
		return nil
	}

	var commands []model.ControlCommand
	for _, c := range parsed.Commands {
		action := model.CommandAction(strings.ToLower(strings.TrimSpace(c.Action)))
		if action != model.ActionOn && action != model.ActionOff {
			uc.l.Warnf(ctx, "chatbot.usecase.parseCommandsWithAI: invalid action %q for target %q", c.Action, c.Target)
			continue
		}
		device, ok := matchTarget(devices, c.Target)
		if !ok {
			uc.l.Warnf(ctx, "chatbot.usecase.parseCommandsWithAI: unmatched target %q", c.Target)
			continue
		}
		commands = append(commands, commandFor(device, action))
	}
	return commands
}

func (uc implUseCase) executeCommand(ctx context.Context, cmd model.ControlCommand, lang vntext.Language) string {
	var err error
	switch {
	case cmd.Kind == model.DeviceKindActuator && cmd.Action == model.ActionOn:
		err = uc.actuators.TurnOn(ctx, cmd.Device)
	case cmd.Kind == model.DeviceKindActuator:
		err = uc.actuators.TurnOff(ctx, cmd.Device)
	default:
		err = uc.devices.SetStatus(ctx, cmd.Device, cmd.Action == model.ActionOn)
	}

	verb := tr(lang, "bật", "turn on")
	if cmd.Action == model.ActionOff {
		verb = tr(lang, "tắt", "turn off")
	}
	if err != nil {
		uc.l.Errorf(ctx, "chatbot.usecase.executeCommand: %s %s: %v", cmd.Action, cmd.Device, err)
		return tr(lang,
			fmt.Sprintf("❌ Không thể %s %s, vui lòng thử lại.", verb, cmd.Label),
			fmt.Sprintf("❌ Could not %s %s, please try again.", verb, cmd.Label))
	}
	if lang == vntext.LanguageEnglish {
		past := "Turned on"
		if cmd.Action == model.ActionOff {
			past = "Turned off"
		}
		return fmt.Sprintf("✅ %s %s.", past, cmd.Label)
	}
	return fmt.Sprintf("✅ Đã %s %s.", verb, cmd.Label)
}

func actionFor(on bool) model.CommandAction {
	if on {
		return model.ActionOn
	}
	return model.ActionOff
}

func commandFor(d catalog.Device, action model.CommandAction) model.ControlCommand {
	return model.ControlCommand{
		Kind:   d.Kind,
		Device: d.ID,
		Label:  d.Label,
		Action: action,
	}
}

// mentionedDevices returns every catalog device whose alias appears in the
// texts, in catalog order, at most once each.
func mentionedDevices(devices []catalog.Device, texts []string) []catalog.Device {
	var out []catalog.Device
	for _, d := range devices {
		if catalog.ContainsAlias(d, texts) {
			out = append(out, d)
		}
	}
	return out
}

// matchTarget resolves a model-returned target against catalog ids, labels,
// and aliases after identifier normalization.
func matchTarget(devices []catalog.Device, target string) (catalog.Device, bool) {
	want := normalizeIdentifier(target)
	if want == "" {
		return catalog.Device{}, false
	}
	for _, d := range devices {
		if normalizeIdentifier(d.ID) == want || normalizeIdentifier(d.Label) == want {
			return d, true
		}
		for _, a := range d.Aliases {
			if normalizeIdentifier(a) == want {
				return d, true
			}
		}
	}
	return catalog.Device{}, false
}

func dedupCommands(commands []model.ControlCommand) []model.ControlCommand {
	seen := make(map[string]struct{}, len(commands))
	out := commands[:0]
	for _, cmd := range commands {
		if _, dup := seen[cmd.Key()]; dup {
			continue
		}
		seen[cmd.Key()] = struct{}{}
		out = append(out, cmd)
	}
	return out
}

func hasConnector(texts []string) bool {
	return vntext.ContainsAny(texts, connectorKeywords...)
}

func canonicalizeDeviceTokens(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = deviceTokenRe.ReplaceAllStringFunc(t, func(m string) string {
			sub := deviceTokenRe.FindStringSubmatch(m)
			n := sub[1]
			if word, ok := deviceNumberWords[n]; ok {
				n = word
			}
			return "device" + n
		})
	}
	return out
}

func catalogLines(devices []catalog.Device) string {
	lines := make([]string, 0, len(devices))
	for _, d := range devices {
		lines = append(lines, fmt.Sprintf("- %s | %s | %s", d.ID, d.Label, strings.Join(d.Aliases, ", ")))
	}
	return strings.Join(lines, "\n")
}

func deviceNames(devices []catalog.Device) string {
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, d.Label)
	}
	return strings.Join(names, ", ")
}
