package state

import (
	"encoding/json"
	"testing"
)

func TestSessionNPCCreateOnUse(t *testing.T) {
	sess := NewSession("village", 42)

	npc := sess.NPC("ham")
	if npc == nil || npc.NPCID != "ham" {
		t.Fatalf("NPC() = %+v", npc)
	}
	if npc.EnergyLevel != EnergyMax {
		t.Errorf("fresh NPC energy = %v, want %v", npc.EnergyLevel, EnergyMax)
	}
	if sess.NPC("ham") != npc {
		t.Error("second lookup must return the same record")
	}
}

func TestSessionResolveTarget(t *testing.T) {
	sess := NewSession("village", 42)
	sess.Aliases["rival"] = "petra"

	if got := sess.ResolveTarget("rival"); got != "petra" {
		t.Errorf("ResolveTarget(rival) = %s, want petra", got)
	}
	if got := sess.ResolveTarget("petra"); got != "petra" {
		t.Errorf("plain ids must pass through, got %s", got)
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	sess := NewSession("village", 42)
	sess.Tick = 7
	sess.WorldTime = 3600
	sess.Flags["player_nearby"] = true
	npc := sess.NPC("ham")
	npc.EnergyLevel = 55
	npc.Relationships["petra"] = map[string]float64{"friendship": 12}
	npc.BeginActivity("tend_fields", 3600, 1800)

	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != sess.ID || got.Tick != 7 || got.WorldTime != 3600 {
		t.Errorf("restored session = %+v", got)
	}
	restored := got.NPC("ham")
	if restored.EnergyLevel != 55 || restored.CurrentActivityID != "tend_fields" {
		t.Errorf("restored NPC = %+v", restored)
	}
	if restored.RelationshipMetric("petra", "friendship") != 12 {
		t.Error("relationships lost in round trip")
	}
}
