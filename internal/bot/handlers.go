package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/d3dd2d/nba-fantasy-data-bot/internal/service"
)

type Handler struct {
	fantasyService *service.FantasyService
}

func NewHandler(fantasyService *service.FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the fantasy hoops bot! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/matchup <team1> vs <team2> - Project a head-to-head matchup for this week\n/matchups - Project every matchup for this week\n/strength <team> - Projected category wins against every opponent, week by week\n/standings - Get league standings\n/whohas <player> - Check which team has a player\n/monitor - Get players to monitor\n/reload - Reload player stats and schedules from disk"
	case "matchup":
		h.handleMatchup(&msg, args)
	case "matchups":
		h.handleMatchups(&msg)
	case "strength":
		h.handleStrength(&msg, args)
	case "standings":
		h.handleStandings(&msg)
	case "whohas":
		h.handleWhoHas(&msg, args)
	case "monitor":
		h.handlePlayersToMonitor(&msg)
	case "reload":
		h.handleReload(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleMatchup(msg *tgbotapi.MessageConfig, args string) {
	team1, team2, ok := splitMatchupArgs(args)
	if !ok {
		msg.Text = "Please provide two team names. Usage: /matchup <team1> vs <team2>"
		return
	}
	report, err := h.fantasyService.GetMatchupProjection(team1, team2)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating matchup projection: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleMatchups(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetWeekMatchupsReport()
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating matchup projections: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleStrength(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /strength <team name>"
		return
	}
	report, err := h.fantasyService.GetTeamStrengthReport(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating team strength report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleStandings(msg *tgbotapi.MessageConfig) {
	standings, err := h.fantasyService.GetStandings()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handleWhoHas(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.fantasyService.WhoHas(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error checking who has player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handlePlayersToMonitor(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetPlayersToMonitor()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching players to monitor: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleReload(msg *tgbotapi.MessageConfig) {
	h.fantasyService.ReloadStats()
	msg.Text = "Stats and schedules reloaded."
}

// splitMatchupArgs splits "Team A vs Team B" on the first standalone
// "vs" token so team names containing spaces survive.
func splitMatchupArgs(args string) (string, string, bool) {
	fields := strings.Fields(args)
	for i, f := range fields {
		if strings.EqualFold(f, "vs") || strings.EqualFold(f, "vs.") {
			team1 := strings.Join(fields[:i], " ")
			team2 := strings.Join(fields[i+1:], " ")
			if team1 != "" && team2 != "" {
				return team1, team2, true
			}
			return "", "", false
		}
	}
	return "", "", false
}
