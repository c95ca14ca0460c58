package world

// NPCPreferences is the per-character layer of the preference cascade.
// Designer/story-mutable, but rarely; the engine treats it as read-only
// within a tick.
type NPCPreferences struct {
	ActivityWeights map[string]float64 `json:"activity_weights,omitempty" yaml:"activity_weights,omitempty"`
	CategoryWeights map[string]float64 `json:"category_weights,omitempty" yaml:"category_weights,omitempty"`

	// TraitModifiers biases the trait-modifier factor per trait.
	TraitModifiers map[string]float64 `json:"trait_modifiers,omitempty" yaml:"trait_modifiers,omitempty"`

	FavoriteLocations []string `json:"favorite_locations,omitempty" yaml:"favorite_locations,omitempty"`

	// PreferredTargets boosts the relationship-bonus factor for
	// activities involving these NPCs.
	PreferredTargets []string `json:"preferred_targets,omitempty" yaml:"preferred_targets,omitempty"`
}

// NPCDef is the authored identity of a simulated character: which
// routine it follows, its traits, and its preference layer.
type NPCDef struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Routine string `json:"routine" yaml:"routine"`

	Traits map[string]float64 `json:"traits,omitempty" yaml:"traits,omitempty"`

	Preferences *NPCPreferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}
