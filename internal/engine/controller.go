package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
)

// Notification is a transient message for the player.
type Notification struct {
	Message    string `json:"message"`
	Kind       string `json:"kind"` // "info", "success", "warning", "danger"
	DurationMs int    `json:"duration_ms"`
}

// Notifier receives notifications. Implementations must not call back into
// the Controller.
type Notifier interface {
	Notify(Notification)
}

// CommandArgs carries the arguments for every action. Each action reads only
// the fields it needs.
type CommandArgs struct {
	OfficerID      string                `json:"officer_id,omitempty"`
	SoldierID      string                `json:"soldier_id,omitempty"`
	BuildingID     string                `json:"building_id,omitempty"`
	RivalID        string                `json:"rival_id,omitempty"`
	BuildingType   economy.BuildingType  `json:"building_type,omitempty"`
	Rank           agents.Rank           `json:"rank,omitempty"`
	Specialization agents.Specialization `json:"specialization,omitempty"`
	ChoiceID       string                `json:"choice_id,omitempty"`
	Battle         *BattlePlan           `json:"battle,omitempty"`
}

// Command is one player intent.
type Command struct {
	Action string      `json:"action"`
	Args   CommandArgs `json:"args"`
}

// Result is the outcome of a dispatched command. Code names the rejection
// class when OK is false.
type Result struct {
	OK     bool   `json:"ok"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrNotFound, "not_found"},
	{ErrInvalid, "invalid"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrInsufficientIntel, "insufficient_intel"},
	{ErrInsufficientInfluence, "insufficient_influence"},
	{ErrInsufficientSoldiers, "insufficient_soldiers"},
	{ErrWrongPhase, "wrong_phase"},
	{ErrUnavailable, "unavailable"},
	{ErrAlreadyAssigned, "already_assigned"},
	{ErrNotAssigned, "not_assigned"},
	{ErrOccupied, "occupied"},
	{ErrRebelBase, "rebel_base"},
	{ErrMaxLevel, "max_level"},
	{ErrIneligible, "ineligible"},
	{ErrNoConflict, "no_conflict"},
	{ErrNoActiveEvent, "no_active_event"},
	{ErrRequirementsUnmet, "requirements_unmet"},
}

// ErrorCode maps a rejection to its stable code.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}

// Controller owns a Game and serializes every read and write to it.
type Controller struct {
	mu       sync.Mutex
	game     *Game
	notifier Notifier

	// Hooks run with the lock held, after the state change. Populated
	// during setup.
	OnDay     func(g *Game, report DailyReport)
	OnResolve func(g *Game, res *EventResolution)
}

// NewController wraps g. notifier may be nil.
func NewController(g *Game, notifier Notifier) *Controller {
	return &Controller{game: g, notifier: notifier}
}

// View returns a deep copy of the current state.
func (c *Controller) View() (*Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Clone()
}

// Snapshot marshals the current state.
func (c *Controller) Snapshot() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return json.Marshal(c.game)
}

// Replace swaps in a different game, for loads and imports.
func (c *Controller) Replace(g *Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.game = g
}

func (c *Controller) notify(message, kind string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(Notification{Message: message, Kind: kind, DurationMs: 4000})
}

// Dispatch runs one command. Rejections come back as a Result with OK
// false; the game is left unchanged.
func (c *Controller) Dispatch(cmd Command) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.run(cmd)
	if err != nil {
		code := ErrorCode(err)
		slog.Debug("command rejected", "action", cmd.Action, "code", code, "reason", err)
		c.notify(err.Error(), "warning")
		return Result{Code: code, Reason: err.Error()}
	}
	return Result{OK: true, Data: data}
}

func (c *Controller) run(cmd Command) (any, error) {
	g := c.game
	a := cmd.Args
	switch cmd.Action {
	case "advance_phase":
		change := g.AdvancePhase()
		if change.Report != nil {
			c.notify(fmt.Sprintf("Day %d: net $%d", change.Day, change.Report.Net), "info")
			if change.Report.Event != nil {
				c.notify(change.Report.Event.Title, "danger")
			}
			if c.OnDay != nil {
				c.OnDay(g, *change.Report)
			}
		}
		return change, nil
	case "assign_officer":
		return nil, g.AssignOfficer(a.OfficerID, a.BuildingID)
	case "unassign_officer":
		return nil, g.UnassignOfficer(a.OfficerID)
	case "share_tea":
		return nil, g.ShareTea(a.OfficerID)
	case "give_bonus":
		return nil, g.GiveBonus(a.OfficerID)
	case "reprimand":
		return nil, g.ReprimandOfficer(a.OfficerID)
	case "promote_officer":
		if err := g.PromoteOfficer(a.OfficerID, a.Rank); err != nil {
			return nil, err
		}
		c.notify(fmt.Sprintf("Promoted to %s", a.Rank), "success")
		return nil, nil
	case "fire_officer":
		return nil, g.FireOfficer(a.OfficerID)
	case "post_bail":
		return nil, g.PostBail(a.OfficerID)
	case "designate_successor":
		return nil, g.DesignateSuccessor(a.OfficerID)
	case "acquire_building":
		b, err := g.AcquireBuilding(a.BuildingType)
		if err != nil {
			return nil, err
		}
		c.notify(fmt.Sprintf("Acquired %s", b.Name), "success")
		return b, nil
	case "upgrade_building":
		return nil, g.UpgradeBuilding(a.BuildingID)
	case "reclaim_building":
		return nil, g.ReclaimBuilding(a.BuildingID)
	case "recruit_soldier":
		return g.RecruitSoldier()
	case "train_soldier":
		return nil, g.TrainSoldier(a.SoldierID)
	case "specialize_soldier":
		return nil, g.SpecializeSoldier(a.SoldierID, a.Specialization)
	case "promote_soldier":
		return g.PromoteSoldierToOfficer(a.SoldierID)
	case "dismiss_soldier":
		return nil, g.DismissSoldier(a.SoldierID)
	case "scout_rival":
		return nil, g.ScoutRival(a.RivalID)
	case "propose_trade":
		return nil, g.ProposeTrade(a.RivalID)
	case "form_alliance":
		return nil, g.FormAlliance(a.RivalID)
	case "negotiate_peace":
		return nil, g.NegotiatePeace(a.RivalID)
	case "launch_battle":
		if a.Battle == nil {
			return nil, reject(ErrInvalid, "battle plan required")
		}
		res, err := g.LaunchBattle(*a.Battle)
		if err != nil {
			return nil, err
		}
		if res.Victory {
			c.notify("Victory", "success")
		} else {
			c.notify("Defeat", "danger")
		}
		return res, nil
	case "resolve_event":
		res, err := g.ResolveEvent(a.ChoiceID)
		if err != nil {
			return nil, err
		}
		c.notify(res.Description, "info")
		if c.OnResolve != nil {
			c.OnResolve(g, res)
		}
		return res, nil
	case "dismiss_event":
		return nil, g.DismissEvent()
	case "complete_tutorial":
		g.TutorialComplete = true
		return nil, nil
	default:
		return nil, reject(ErrInvalid, "unknown action %q", cmd.Action)
	}
}
