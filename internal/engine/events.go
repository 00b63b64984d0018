package engine

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

// Severity grades how much an event can hurt.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Focus selects which officer an event is about.
type Focus int

const (
	FocusAnyOfficer Focus = iota
	FocusWounded
	FocusArrested
	FocusTraitor
)

// Narratives are the text pools an event is told from. One line is drawn
// from each pool.
type Narratives struct {
	Intro        []string
	Details      []string
	Consequences []string
}

// Modifier is an optional twist on an event. Zero multipliers count as 1.
type Modifier struct {
	Name                 string
	Description          string
	BribeCostMultiplier  float64
	RewardMultiplier     float64
	ReputationMultiplier float64
	RiskMultiplier       float64
}

// Requirements gate a choice. A choice whose requirements are unmet cannot be
// picked.
type Requirements struct {
	Cash      int `json:"cash,omitempty"`
	Intel     int `json:"intel,omitempty"`
	Influence int `json:"influence,omitempty"`
	Soldiers  int `json:"soldiers,omitempty"`
}

// Effects are the state changes an outcome applies. Officer effects hit the
// event's focus officer; rival and building effects hit the sampled rival and
// building.
type Effects struct {
	Cash           int  `json:"cash,omitempty"`
	LoseCashAtRisk bool `json:"lose_cash_at_risk,omitempty"`
	Reputation     int  `json:"reputation,omitempty"`
	Heat           int  `json:"heat,omitempty"`
	Intel          int  `json:"intel,omitempty"`
	Influence      int  `json:"influence,omitempty"`

	OfficerLoyalty  int `json:"officer_loyalty,omitempty"`
	SoldierLoyalty  int `json:"soldier_loyalty,omitempty"`
	SoldiersLost    int `json:"soldiers_lost,omitempty"`
	RecruitSoldiers int `json:"recruit_soldiers,omitempty"`

	WoundOfficer   int  `json:"wound_officer,omitempty"`
	ArrestOfficer  bool `json:"arrest_officer,omitempty"`
	ReleaseOfficer bool `json:"release_officer,omitempty"`
	HealOfficer    bool `json:"heal_officer,omitempty"`
	RemoveTraitor  bool `json:"remove_traitor,omitempty"`
	ClearTraitor   bool `json:"clear_traitor,omitempty"`

	RivalRelationship int  `json:"rival_relationship,omitempty"`
	RivalStrength     int  `json:"rival_strength,omitempty"`
	StartConflict     bool `json:"start_conflict,omitempty"`
	EndConflict       bool `json:"end_conflict,omitempty"`

	BuildingInactiveDays int  `json:"building_inactive_days,omitempty"`
	RebelBase            bool `json:"rebel_base,omitempty"`
}

// Outcome is one weighted result of a choice.
type Outcome struct {
	Probability float64
	Description string
	Effects     Effects
	FollowUp    string
	Adverse     bool
}

// Choice is an option offered to the player.
type Choice struct {
	ID           string
	Label        string
	Requirements Requirements
	Outcomes     []Outcome
}

// Template is an immutable event definition. A nil Conditions means the
// template only fires as a follow-up.
type Template struct {
	Type       string
	Title      string
	Severity   Severity
	BaseWeight float64
	Focus      Focus
	Conditions func(*Game) bool
	Narratives Narratives
	Modifiers  []Modifier
	Choices    []Choice
}

// EventInstance is a generated event waiting for the player.
type EventInstance struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Severity  Severity          `json:"severity"`
	Narrative string            `json:"narrative"`
	Modifier  string            `json:"modifier,omitempty"`
	Context   map[string]string `json:"context"`
	Day       int               `json:"day"`
}

// ChoiceView is a choice as presented, with whether it can be picked now.
type ChoiceView struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Requirements Requirements `json:"requirements"`
	Available    bool         `json:"available"`
}

// EventResolution reports what a resolved choice did.
type EventResolution struct {
	EventID     string         `json:"event_id"`
	ChoiceID    string         `json:"choice_id"`
	Description string         `json:"description"`
	Effects     Effects        `json:"effects"`
	FollowUp    string         `json:"follow_up,omitempty"`
	Next        *EventInstance `json:"next,omitempty"`
}

var placeholder = regexp.MustCompile(`\$\{(\w+)\}`)

// PickWeighted walks weights in order, subtracting each from draw, and
// returns the first index where draw falls to zero or below. Rounding
// leftovers land on the last index. It returns -1 for no weights.
func PickWeighted(weights []float64, draw float64) int {
	if len(weights) == 0 {
		return -1
	}
	for i, w := range weights {
		draw -= w
		if draw <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

func multiplier(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Templates returns the event templates bound to the game.
func (g *Game) Templates() []Template {
	return g.templates
}

func (g *Game) template(eventType string) (*Template, bool) {
	for i := range g.templates {
		if g.templates[i].Type == eventType {
			return &g.templates[i], true
		}
	}
	return nil, false
}

// EligibleTemplates returns the templates whose conditions hold now, in
// catalog order.
func (g *Game) EligibleTemplates() []*Template {
	var out []*Template
	for i := range g.templates {
		t := &g.templates[i]
		if t.Conditions != nil && t.BaseWeight > 0 && t.Conditions(g) {
			out = append(out, t)
		}
	}
	return out
}

// GenerateDynamicEvent draws an eligible template by weight and queues an
// instance of it. It returns nil when nothing is eligible.
func (g *Game) GenerateDynamicEvent() *EventInstance {
	eligible := g.EligibleTemplates()
	if len(eligible) == 0 {
		return nil
	}
	weights := make([]float64, len(eligible))
	total := 0.0
	for i, t := range eligible {
		weights[i] = t.BaseWeight
		total += t.BaseWeight
	}
	t := eligible[PickWeighted(weights, g.src.Float64()*total)]
	inst := g.instantiate(t)
	g.enqueue(inst)
	return inst
}

func (g *Game) instantiate(t *Template) *EventInstance {
	inst := &EventInstance{
		ID:       g.nextEventID(),
		Type:     t.Type,
		Title:    t.Title,
		Severity: t.Severity,
		Day:      g.Day,
	}
	if len(t.Modifiers) > 0 && entropy.Chance(g.src, 0.5) {
		inst.Modifier = t.Modifiers[g.src.Intn(len(t.Modifiers))].Name
	}
	inst.Context = g.eventContext(t.Focus)
	inst.Narrative = g.narrate(t.Narratives, inst.Context)
	return inst
}

func (g *Game) enqueue(inst *EventInstance) {
	if g.ActiveEvent == nil {
		g.ActiveEvent = inst
	} else {
		g.PendingEvents = append(g.PendingEvents, inst)
	}
	g.record(fmt.Sprintf("Event: %s", inst.Title), "event")
	slog.Info("event queued", "type", inst.Type, "id", inst.ID, "pending", len(g.PendingEvents))
}

// eventContext samples the live entities an event can talk about.
func (g *Game) eventContext(focus Focus) map[string]string {
	ctx := map[string]string{
		"cash":       strconv.Itoa(g.Resources.Cash),
		"cashAtRisk": strconv.Itoa(int(math.Floor(float64(g.Resources.Cash) * 0.2))),
		"heat":       strconv.Itoa(g.Resources.PoliceHeat),
		"soldiers":   strconv.Itoa(len(g.Soldiers)),
		"day":        strconv.Itoa(g.Day),
	}
	pickOfficer := func(keep func(*agents.Officer) bool) *agents.Officer {
		var pool []*agents.Officer
		for _, o := range g.Officers {
			if keep(o) {
				pool = append(pool, o)
			}
		}
		if len(pool) == 0 {
			return nil
		}
		return pool[g.src.Intn(len(pool))]
	}
	set := func(key string, o *agents.Officer) {
		if o != nil {
			ctx[key] = o.Name
			ctx[key+"Id"] = o.ID
		}
	}

	avail := pickOfficer(func(o *agents.Officer) bool { return o.Available() })
	wounded := pickOfficer(func(o *agents.Officer) bool { return o.IsWounded })
	arrested := pickOfficer(func(o *agents.Officer) bool { return o.IsArrested })
	traitor := pickOfficer(func(o *agents.Officer) bool { return o.IsTraitor })
	set("officer", avail)
	set("woundedOfficer", wounded)
	set("arrestedOfficer", arrested)
	set("traitor", traitor)

	focused := avail
	switch focus {
	case FocusWounded:
		focused = wounded
	case FocusArrested:
		focused = arrested
	case FocusTraitor:
		focused = traitor
	}
	if focused != nil {
		ctx["focusId"] = focused.ID
	}

	if occupied := g.OccupiedBuildings(); len(occupied) > 0 {
		b := occupied[g.src.Intn(len(occupied))]
		ctx["building"] = b.Name
		ctx["buildingId"] = b.ID
	}

	var hostile []int
	for i, r := range g.Rivals {
		if r.Hostile() {
			hostile = append(hostile, i)
		}
	}
	if len(hostile) > 0 {
		r := g.Rivals[hostile[g.src.Intn(len(hostile))]]
		ctx["rival"] = r.Name
		ctx["rivalId"] = r.ID
		ctx["district"] = r.District
	}
	return ctx
}

func (g *Game) narrate(n Narratives, ctx map[string]string) string {
	var text string
	for _, pool := range [][]string{n.Intro, n.Details, n.Consequences} {
		if len(pool) == 0 {
			continue
		}
		line := pool[g.src.Intn(len(pool))]
		if text != "" {
			text += " "
		}
		text += line
	}
	return Interpolate(text, ctx)
}

// Interpolate substitutes ${key} placeholders from ctx. Unknown keys read as
// "someone".
func Interpolate(text string, ctx map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := ctx[key]; ok {
			return v
		}
		return "someone"
	})
}

func (g *Game) meets(r Requirements) bool {
	return g.Resources.Cash >= r.Cash &&
		g.Resources.Intel >= r.Intel &&
		g.Resources.Influence >= r.Influence &&
		len(g.ActiveSoldiers()) >= r.Soldiers
}

// EventChoices lists the options for inst.
func (g *Game) EventChoices(inst *EventInstance) []ChoiceView {
	if inst == nil {
		return nil
	}
	t, ok := g.template(inst.Type)
	if !ok {
		return nil
	}
	mod := t.modifier(inst.Modifier)
	out := make([]ChoiceView, 0, len(t.Choices))
	for _, c := range t.Choices {
		req := scaleRequirements(c.Requirements, mod)
		out = append(out, ChoiceView{
			ID:           c.ID,
			Label:        Interpolate(c.Label, inst.Context),
			Requirements: req,
			Available:    g.meets(req),
		})
	}
	return out
}

// scaleRequirements prices a choice's cash requirement the way its costs are
// charged under mod.
func scaleRequirements(r Requirements, mod Modifier) Requirements {
	r.Cash = int(math.Round(float64(r.Cash) * multiplier(mod.BribeCostMultiplier)))
	return r
}

func (t *Template) modifier(name string) Modifier {
	for _, m := range t.Modifiers {
		if m.Name == name {
			return m
		}
	}
	return Modifier{}
}

// ResolveEvent applies the player's choice for the active event and promotes
// the next pending event.
func (g *Game) ResolveEvent(choiceID string) (*EventResolution, error) {
	inst := g.ActiveEvent
	if inst == nil {
		return nil, reject(ErrNoActiveEvent, "nothing to resolve")
	}
	t, ok := g.template(inst.Type)
	if !ok {
		return nil, reject(ErrNotFound, "event type %s", inst.Type)
	}
	var choice *Choice
	for i := range t.Choices {
		if t.Choices[i].ID == choiceID {
			choice = &t.Choices[i]
			break
		}
	}
	if choice == nil {
		return nil, reject(ErrNotFound, "choice %q for %s", choiceID, inst.Type)
	}
	mod := t.modifier(inst.Modifier)
	if !g.meets(scaleRequirements(choice.Requirements, mod)) {
		return nil, reject(ErrRequirementsUnmet, "%s", choice.Label)
	}
	if len(choice.Outcomes) == 0 {
		return nil, reject(ErrInvalid, "choice %q has no outcomes", choiceID)
	}

	weights := make([]float64, len(choice.Outcomes))
	total := 0.0
	for i, o := range choice.Outcomes {
		w := o.Probability
		if o.Adverse {
			w *= multiplier(mod.RiskMultiplier)
		}
		weights[i] = w
		total += w
	}
	outcome := choice.Outcomes[PickWeighted(weights, g.src.Float64()*total)]

	eff := scaleEffects(outcome.Effects, mod, inst.Context)
	g.applyEffects(eff, inst.Context)

	res := &EventResolution{
		EventID:     inst.ID,
		ChoiceID:    choice.ID,
		Description: Interpolate(outcome.Description, inst.Context),
		Effects:     eff,
		FollowUp:    outcome.FollowUp,
	}
	g.record(fmt.Sprintf("%s: %s", inst.Title, res.Description), "event")

	if outcome.FollowUp != "" {
		if next, ok := g.template(outcome.FollowUp); ok {
			g.PendingEvents = append([]*EventInstance{g.instantiate(next)}, g.PendingEvents...)
		} else {
			slog.Warn("unknown follow-up event", "type", outcome.FollowUp)
		}
	}
	g.popEvent()
	res.Next = g.ActiveEvent
	return res, nil
}

// DismissEvent drops the active event without applying anything.
func (g *Game) DismissEvent() error {
	if g.ActiveEvent == nil {
		return reject(ErrNoActiveEvent, "nothing to dismiss")
	}
	g.record(fmt.Sprintf("Ignored: %s", g.ActiveEvent.Title), "event")
	g.popEvent()
	return nil
}

func (g *Game) popEvent() {
	g.ActiveEvent = nil
	if len(g.PendingEvents) > 0 {
		g.ActiveEvent = g.PendingEvents[0]
		g.PendingEvents = g.PendingEvents[1:]
	}
}

// scaleEffects applies the modifier's multipliers. Costs scale with the
// bribe multiplier, gains with the reward multiplier.
func scaleEffects(e Effects, mod Modifier, ctx map[string]string) Effects {
	if e.LoseCashAtRisk {
		atRisk, _ := strconv.Atoi(ctx["cashAtRisk"])
		e.Cash -= atRisk
		e.LoseCashAtRisk = false
	}
	switch {
	case e.Cash < 0:
		e.Cash = int(math.Round(float64(e.Cash) * multiplier(mod.BribeCostMultiplier)))
	case e.Cash > 0:
		e.Cash = int(math.Round(float64(e.Cash) * multiplier(mod.RewardMultiplier)))
	}
	e.Reputation = int(math.Round(float64(e.Reputation) * multiplier(mod.ReputationMultiplier)))
	return e
}

func (g *Game) applyEffects(e Effects, ctx map[string]string) {
	r := &g.Resources
	r.AdjustCash(e.Cash)
	r.AdjustReputation(e.Reputation)
	r.AdjustHeat(e.Heat)
	r.AdjustIntel(e.Intel)
	r.AdjustInfluence(e.Influence)

	for _, s := range g.Soldiers {
		s.AdjustLoyalty(e.SoldierLoyalty)
	}
	for i := 0; i < e.SoldiersLost && len(g.Soldiers) > 0; i++ {
		g.Soldiers = g.Soldiers[:len(g.Soldiers)-1]
	}
	for i := 0; i < e.RecruitSoldiers; i++ {
		g.Soldiers = append(g.Soldiers, g.spawner.Recruit(g.nextSoldierID()))
	}

	if o := g.Officer(ctx["focusId"]); o != nil {
		o.AdjustLoyalty(e.OfficerLoyalty)
		if e.WoundOfficer > 0 {
			g.releaseOfficer(o)
			o.Wound(e.WoundOfficer)
		}
		if e.ArrestOfficer {
			g.releaseOfficer(o)
			o.IsArrested = true
		}
		if e.ReleaseOfficer {
			o.IsArrested = false
		}
		if e.HealOfficer {
			o.IsWounded = false
			o.DaysToRecovery = 0
		}
		if e.ClearTraitor {
			o.IsTraitor = false
		}
		if e.RemoveTraitor && o.IsTraitor {
			g.releaseOfficer(o)
			g.removeOfficer(o.ID)
		}
	}

	if rv := g.Rival(ctx["rivalId"]); rv != nil {
		rv.AdjustRelationship(e.RivalRelationship)
		rv.AdjustStrength(e.RivalStrength)
		if e.StartConflict {
			rv.IsActiveConflict = true
		}
		if e.EndConflict {
			rv.IsActiveConflict = false
		}
	}

	if b := g.Building(ctx["buildingId"]); b != nil {
		if e.BuildingInactiveDays > 0 {
			b.Deactivate(g.Day + e.BuildingInactiveDays)
		}
		if e.RebelBase {
			g.releaseBuilding(b)
			b.IsRebelBase = true
		}
	}
}
