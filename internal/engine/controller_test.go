package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/entropy"
)

type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.notes {
		out = append(out, n.Kind)
	}
	return out
}

func TestDispatchCodes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		ok   bool
		code string
	}{
		{"unknown action", Command{Action: "bribe_mayor"}, false, "invalid"},
		{"missing officer", Command{Action: "share_tea", Args: CommandArgs{OfficerID: "off-404"}}, false, "not_found"},
		{"missing battle plan", Command{Action: "launch_battle"}, false, "invalid"},
		{"peace without war", Command{Action: "negotiate_peace", Args: CommandArgs{RivalID: "rival-1"}}, false, "no_conflict"},
		{"no event", Command{Action: "dismiss_event"}, false, "no_active_event"},
		{"too expensive", Command{Action: "acquire_building", Args: CommandArgs{BuildingType: economy.PoliceStation}}, false, "insufficient_funds"},
		{"tea", Command{Action: "share_tea", Args: CommandArgs{OfficerID: "off-1"}}, true, ""},
		{"tutorial", Command{Action: "complete_tutorial"}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := NewController(newTestGame(t), nil)
			res := ctl.Dispatch(tt.cmd)
			if res.OK != tt.ok || res.Code != tt.code {
				t.Fatalf("result = %+v, want ok=%v code=%q", res, tt.ok, tt.code)
			}
			if !res.OK && res.Reason == "" {
				t.Fatal("rejection without a reason")
			}
		})
	}
}

func TestDispatchRejectionLeavesStateAlone(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseEvening
	notes := &recordingNotifier{}
	ctl := NewController(g, notes)
	before, err := ctl.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	res := ctl.Dispatch(Command{Action: "give_bonus", Args: CommandArgs{OfficerID: "off-1"}})
	if res.OK || res.Code != "wrong_phase" {
		t.Fatalf("result = %+v", res)
	}
	after, _ := ctl.Snapshot()
	if string(before) != string(after) {
		t.Fatal("rejected command changed the game")
	}
	if kinds := notes.kinds(); len(kinds) != 1 || kinds[0] != "warning" {
		t.Fatalf("notifications = %v", kinds)
	}
}

func TestDispatchDayHook(t *testing.T) {
	ctl := NewController(newTestGame(t), nil)
	var days []int
	ctl.OnDay = func(g *Game, rep DailyReport) { days = append(days, rep.Day) }

	for rangeIdx := 0; rangeIdx < 8; rangeIdx++ {
		if res := ctl.Dispatch(Command{Action: "advance_phase"}); !res.OK {
			t.Fatalf("advance: %+v", res)
		}
	}
	if fmt.Sprint(days) != "[2 3]" {
		t.Fatalf("OnDay saw days %v, want [2 3]", days)
	}
}

func TestDispatchResolveHook(t *testing.T) {
	g := bareGame(t, entropy.NewSequence(0))
	g.templates = []Template{simpleTemplate("note", 1)}
	g.GenerateDynamicEvent()
	ctl := NewController(g, nil)
	var resolved string
	ctl.OnResolve = func(_ *Game, res *EventResolution) { resolved = res.ChoiceID }

	view, err := ctl.View()
	if err != nil {
		t.Fatal(err)
	}
	if got := view.EventChoices(view.ActiveEvent); len(got) != 1 || !got[0].Available {
		t.Fatalf("choices = %+v", got)
	}
	if res := ctl.Dispatch(Command{Action: "resolve_event", Args: CommandArgs{ChoiceID: "ok"}}); !res.OK {
		t.Fatalf("resolve: %+v", res)
	}
	if resolved != "ok" {
		t.Fatalf("OnResolve saw %q", resolved)
	}
}

func TestViewIsACopy(t *testing.T) {
	ctl := NewController(newTestGame(t), nil)
	view, err := ctl.View()
	if err != nil {
		t.Fatal(err)
	}
	view.Resources.Cash = 0
	view.Officers[0].Loyalty = 0

	again, _ := ctl.View()
	if again.Resources.Cash == 0 || again.Officers[0].Loyalty == 0 {
		t.Fatal("mutating a view reached the live game")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	ctl := NewController(newTestGame(t), nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rangeIdx := 0; rangeIdx < 20; rangeIdx++ {
				ctl.Dispatch(Command{Action: "advance_phase"})
				ctl.Dispatch(Command{Action: "recruit_soldier"})
				_, _ = ctl.View()
			}
		}()
	}
	wg.Wait()

	g, _ := ctl.View()
	if g.Day != 1+8*20/4 {
		t.Fatalf("day = %d after 160 advances", g.Day)
	}
	if !g.Resources.Valid() || !g.AssignmentsConsistent() {
		t.Fatal("state invalid after concurrent dispatch")
	}
}

func TestErrorCodeDefaultsToInternal(t *testing.T) {
	if got := ErrorCode(fmt.Errorf("disk on fire")); got != "internal" {
		t.Fatalf("ErrorCode = %q", got)
	}
	if got := ErrorCode(fmt.Errorf("wrapped: %w", ErrMaxLevel)); got != "max_level" {
		t.Fatalf("ErrorCode = %q", got)
	}
}
