// Package simulation provides the tunable rules of the game world.
// Defaults live in DefaultConfig; a YAML file can override any subset of them.
package simulation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Millis is a duration in milliseconds, the unit every timer in the game uses.
type Millis float64

// Duration converts m to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(float64(m) * float64(time.Millisecond))
}

// Config holds all simulation rules
type Config struct {
	Seed int64 `yaml:"seed" json:"seed"` // 0 = time based

	World       WorldConfig       `yaml:"world" json:"world"`
	Clock       ClockConfig       `yaml:"clock" json:"clock"`
	Player      PlayerConfig      `yaml:"player" json:"player"`
	Companion   CompanionConfig   `yaml:"companion" json:"companion"`
	Chests      ChestConfig       `yaml:"chests" json:"chests"`
	Items       ItemConfig        `yaml:"items" json:"items"`
	Fireflies   FireflyConfig     `yaml:"fireflies" json:"fireflies"`
	Projectile  ProjectileConfig  `yaml:"projectile" json:"projectile"`
	Particles   ParticleConfig    `yaml:"particles" json:"particles"`
	Progress    ProgressConfig    `yaml:"progress" json:"progress"`
	Interaction InteractionConfig `yaml:"interaction" json:"interaction"`
	Interior    InteriorConfig    `yaml:"interior" json:"interior"`
}

// WorldConfig sizes the map and its procedural content
type WorldConfig struct {
	Width         float64 `yaml:"width" json:"width"`
	Height        float64 `yaml:"height" json:"height"`
	VillageWidth  float64 `yaml:"village_width" json:"village_width"`
	VillageHeight float64 `yaml:"village_height" json:"village_height"`
	FountainSize  float64 `yaml:"fountain_size" json:"fountain_size"`

	Houses          int     `yaml:"houses" json:"houses"`               // including the player house
	HouseRadius     float64 `yaml:"house_radius" json:"house_radius"`   // ring radius around the fountain
	HouseWidth      float64 `yaml:"house_width" json:"house_width"`
	HouseHeight     float64 `yaml:"house_height" json:"house_height"`
	HouseTypes      int     `yaml:"house_types" json:"house_types"`
	VillageTrees    int     `yaml:"village_trees" json:"village_trees"`
	ForestSamples   int     `yaml:"forest_samples" json:"forest_samples"`
	TreeAttempts    int     `yaml:"tree_attempts" json:"tree_attempts"`
	TreeGap         float64 `yaml:"tree_gap" json:"tree_gap"`                   // min distance between trees
	TreeHouseGap    float64 `yaml:"tree_house_gap" json:"tree_house_gap"`       // min distance tree to house centre
	TreeFountainGap float64 `yaml:"tree_fountain_gap" json:"tree_fountain_gap"` // min distance tree to fountain centre
	TreeTypes       int     `yaml:"tree_types" json:"tree_types"`
	ForestMinChance float64 `yaml:"forest_min_chance" json:"forest_min_chance"`
	ForestMaxChance float64 `yaml:"forest_max_chance" json:"forest_max_chance"`
}

// ClockConfig controls the day/night cycle
type ClockConfig struct {
	DayLength Millis `yaml:"day_length_ms" json:"day_length_ms"`
	StartTime Millis `yaml:"start_time_ms" json:"start_time_ms"`
}

// PlayerConfig defines player movement and idle behaviour
type PlayerConfig struct {
	Width            float64 `yaml:"width" json:"width"`
	Height           float64 `yaml:"height" json:"height"`
	Speed            float64 `yaml:"speed" json:"speed"` // units per second
	CatMultiplier    float64 `yaml:"cat_multiplier" json:"cat_multiplier"`
	StartAsCat       bool    `yaml:"start_as_cat" json:"start_as_cat"`
	WalkFrame        Millis  `yaml:"walk_frame_ms" json:"walk_frame_ms"`
	IdleAnimation    Millis  `yaml:"idle_animation_ms" json:"idle_animation_ms"`
	IdleWindowStart  Millis  `yaml:"idle_window_start_ms" json:"idle_window_start_ms"`
	SleepAfter       Millis  `yaml:"sleep_after_ms" json:"sleep_after_ms"`
	IdleChance       float64 `yaml:"idle_chance" json:"idle_chance"` // probability per IdleChancePer
	IdleChancePer    Millis  `yaml:"idle_chance_per_ms" json:"idle_chance_per_ms"`
	DoorBand         float64 `yaml:"door_band" json:"door_band"`
	DoorInset        float64 `yaml:"door_inset" json:"door_inset"`
	CatBoxFraction   float64 `yaml:"cat_box_fraction" json:"cat_box_fraction"`
	HumanBoxFraction float64 `yaml:"human_box_fraction" json:"human_box_fraction"`
	MagicCooldown    Millis  `yaml:"magic_cooldown_ms" json:"magic_cooldown_ms"`
	SpawnBelowFount  float64 `yaml:"spawn_below_fountain" json:"spawn_below_fountain"`
}

// CompanionConfig defines follow-chain behaviour
type CompanionConfig struct {
	Size          float64  `yaml:"size" json:"size"`
	Speed         float64  `yaml:"speed" json:"speed"` // units per second
	LeadDistance  float64  `yaml:"lead_distance" json:"lead_distance"`
	LinkDistance  float64  `yaml:"link_distance" json:"link_distance"`
	JoinSlack     float64  `yaml:"join_slack" json:"join_slack"`
	CatchUp       float64  `yaml:"catch_up" json:"catch_up"`
	RingRadius    float64  `yaml:"ring_radius" json:"ring_radius"`
	RingThreshold float64  `yaml:"ring_threshold" json:"ring_threshold"`
	RingSpeed     float64  `yaml:"ring_speed" json:"ring_speed"` // multiplier of Speed
	Gravity       float64  `yaml:"gravity" json:"gravity"`       // units per second squared
	Damping       float64  `yaml:"damping" json:"damping"`       // per 60 Hz frame
	PickupRadius  float64  `yaml:"pickup_radius" json:"pickup_radius"`
	Types         []string `yaml:"types" json:"types"`
}

// TierConfig is one row of the chest tier table
type TierConfig struct {
	Color            string  `yaml:"color" json:"color"`
	Glow             string  `yaml:"glow" json:"glow"`
	SizeBase         float64 `yaml:"size_base" json:"size_base"`
	SizeJitter       float64 `yaml:"size_jitter" json:"size_jitter"` // fraction, 0.1 = ±10%
	Cost             int     `yaml:"cost" json:"cost"`
	MinCompanions    int     `yaml:"min_companions" json:"min_companions"`
	MaxCompanions    int     `yaml:"max_companions" json:"max_companions"`
	CompanionSize    float64 `yaml:"companion_size" json:"companion_size"`
	SpawnProbability float64 `yaml:"spawn_probability" json:"spawn_probability"`
	ArcSpeedMin      float64 `yaml:"arc_speed_min" json:"arc_speed_min"` // units per second
	ArcSpeedMax      float64 `yaml:"arc_speed_max" json:"arc_speed_max"`
	ArcDuration      Millis  `yaml:"arc_duration_ms" json:"arc_duration_ms"`
}

// ChestConfig covers chest placement and the tier table
type ChestConfig struct {
	Width           float64      `yaml:"width" json:"width"`
	Height          float64      `yaml:"height" json:"height"`
	TierStep        float64      `yaml:"tier_step" json:"tier_step"`
	Tiers           []TierConfig `yaml:"tiers" json:"tiers"`
	Rounds          int          `yaml:"rounds" json:"rounds"`
	Attempts        int          `yaml:"attempts" json:"attempts"`
	EdgeMargin      float64      `yaml:"edge_margin" json:"edge_margin"`
	FountainGap     float64      `yaml:"fountain_gap" json:"fountain_gap"`
	TreeGap         float64      `yaml:"tree_gap" json:"tree_gap"`
	HouseGap        float64      `yaml:"house_gap" json:"house_gap"`
	HouseFrontGap   float64      `yaml:"house_front_gap" json:"house_front_gap"`
	BasicPairGap    float64      `yaml:"basic_pair_gap" json:"basic_pair_gap"`
	PairGap         float64      `yaml:"pair_gap" json:"pair_gap"`
	HitsToOpenBasic int          `yaml:"hits_to_open_basic" json:"hits_to_open_basic"`
	SpawnOffset     float64      `yaml:"spawn_offset" json:"spawn_offset"`
	XPPerCompanion  int          `yaml:"xp_per_companion" json:"xp_per_companion"`
	CashMin         int          `yaml:"cash_min" json:"cash_min"`
	CashSpread      int          `yaml:"cash_spread" json:"cash_spread"`
}

// ItemConfig covers heart pickups
type ItemConfig struct {
	Count         int     `yaml:"count" json:"count"`
	Size          float64 `yaml:"size" json:"size"`
	PickupRadius  float64 `yaml:"pickup_radius" json:"pickup_radius"`
	BoostFactor   float64 `yaml:"boost_factor" json:"boost_factor"`
	BoostDuration Millis  `yaml:"boost_duration_ms" json:"boost_duration_ms"`
}

// FireflyConfig covers the night population
type FireflyConfig struct {
	Count        int     `yaml:"count" json:"count"`
	XP           int     `yaml:"xp" json:"xp"`
	Size         float64 `yaml:"size" json:"size"`
	MaxSize      float64 `yaml:"max_size" json:"max_size"`
	PickupRadius float64 `yaml:"pickup_radius" json:"pickup_radius"`
	Drift        float64 `yaml:"drift" json:"drift"` // max units per second per axis
	JarCap       int     `yaml:"jar_cap" json:"jar_cap"`
}

// ProjectileConfig covers the ranged attack
type ProjectileConfig struct {
	Speed     float64 `yaml:"speed" json:"speed"`
	Radius    float64 `yaml:"radius" json:"radius"`
	Lifetime  Millis  `yaml:"lifetime_ms" json:"lifetime_ms"`
	HitRadius float64 `yaml:"hit_radius" json:"hit_radius"`
}

// ParticleConfig covers cosmetic particles
type ParticleConfig struct {
	Decay    float64 `yaml:"decay" json:"decay"`     // life per second
	Gravity  float64 `yaml:"gravity" json:"gravity"` // units per second squared
	SpeedMin float64 `yaml:"speed_min" json:"speed_min"`
	SpeedMax float64 `yaml:"speed_max" json:"speed_max"`
}

// ProgressConfig covers leveling
type ProgressConfig struct {
	FirstThreshold int     `yaml:"first_threshold" json:"first_threshold"`
	Growth         float64 `yaml:"growth" json:"growth"`
	LevelBurst     int     `yaml:"level_burst" json:"level_burst"`
}

// InteractionConfig covers the action key
type InteractionConfig struct {
	ChestRange    float64 `yaml:"chest_range" json:"chest_range"` // multiplied by chest size
	BuildingRange float64 `yaml:"building_range" json:"building_range"`
	ExitCooldown  Millis  `yaml:"exit_cooldown_ms" json:"exit_cooldown_ms"`
}

// InteriorConfig covers indoor mode
type InteriorConfig struct {
	Margin        float64 `yaml:"margin" json:"margin"`
	Wall          float64 `yaml:"wall" json:"wall"`
	ShopHeight    float64 `yaml:"shop_height" json:"shop_height"`
	DoorClearance float64 `yaml:"door_clearance" json:"door_clearance"`
	WanderSpeed   float64 `yaml:"wander_speed" json:"wander_speed"`
	WanderMin     Millis  `yaml:"wander_min_ms" json:"wander_min_ms"`
	WanderMax     Millis  `yaml:"wander_max_ms" json:"wander_max_ms"`
}

// DefaultConfig returns the rules the game ships with
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:           16000,
			Height:          12000,
			VillageWidth:    1600,
			VillageHeight:   1200,
			FountainSize:    200,
			Houses:          9,
			HouseRadius:     400,
			HouseWidth:      160,
			HouseHeight:     140,
			HouseTypes:      4,
			VillageTrees:    50,
			ForestSamples:   8000,
			TreeAttempts:    100,
			TreeGap:         80,
			TreeHouseGap:    160,
			TreeFountainGap: 300,
			TreeTypes:       3,
			ForestMinChance: 0.15,
			ForestMaxChance: 0.95,
		},
		Clock: ClockConfig{
			DayLength: 60000,
			StartTime: 6000,
		},
		Player: PlayerConfig{
			Width:            48,
			Height:           64,
			Speed:            180,
			CatMultiplier:    1.3,
			StartAsCat:       true,
			WalkFrame:        166,
			IdleAnimation:    1200,
			IdleWindowStart:  6000,
			SleepAfter:       20000,
			IdleChance:       0.01,
			IdleChancePer:    16,
			DoorBand:         60,
			DoorInset:        40,
			CatBoxFraction:   0.3,
			HumanBoxFraction: 0.5,
			MagicCooldown:    500,
			SpawnBelowFount:  50,
		},
		Companion: CompanionConfig{
			Size:          40,
			Speed:         150,
			LeadDistance:  50,
			LinkDistance:  30,
			JoinSlack:     50,
			CatchUp:       1.5,
			RingRadius:    80,
			RingThreshold: 5,
			RingSpeed:     0.5,
			Gravity:       1080,
			Damping:       0.98,
			PickupRadius:  40,
			Types:         []string{"kitten1", "kitten2", "kitten3", "frog", "squirrel", "puppy", "bunny"},
		},
		Chests: ChestConfig{
			Width:    72,
			Height:   60,
			TierStep: 2000,
			Tiers: []TierConfig{
				{Color: "purple", Glow: "#9370DB", SizeBase: 1.0, SizeJitter: 0, Cost: 0, MinCompanions: 1, MaxCompanions: 1, CompanionSize: 1.0, SpawnProbability: 0.8, ArcSpeedMin: 360, ArcSpeedMax: 600, ArcDuration: 1000},
				{Color: "green", Glow: "#FFD700", SizeBase: 1.5, SizeJitter: 0.1, Cost: 5, MinCompanions: 1, MaxCompanions: 1, CompanionSize: 1.25, SpawnProbability: 0.65, ArcSpeedMin: 480, ArcSpeedMax: 720, ArcDuration: 1000},
				{Color: "blue", Glow: "#0000FF", SizeBase: 2.0, SizeJitter: 0.1, Cost: 10, MinCompanions: 1, MaxCompanions: 1, CompanionSize: 1.5, SpawnProbability: 0.55, ArcSpeedMin: 420, ArcSpeedMax: 600, ArcDuration: 1000},
				{Color: "red", Glow: "#FF0000", SizeBase: 2.5, SizeJitter: 0.1, Cost: 20, MinCompanions: 2, MaxCompanions: 5, CompanionSize: 1.5, SpawnProbability: 0.4, ArcSpeedMin: 600, ArcSpeedMax: 900, ArcDuration: 1400},
				{Color: "magenta", Glow: "#9370DB", SizeBase: 3.0, SizeJitter: 0.1, Cost: 50, MinCompanions: 3, MaxCompanions: 7, CompanionSize: 2.0, SpawnProbability: 0.3, ArcSpeedMin: 900, ArcSpeedMax: 1500, ArcDuration: 1800},
			},
			Rounds:          500,
			Attempts:        50,
			EdgeMargin:      300,
			FountainGap:     300,
			TreeGap:         60,
			HouseGap:        120,
			HouseFrontGap:   100,
			BasicPairGap:    350,
			PairGap:         500,
			HitsToOpenBasic: 3,
			SpawnOffset:     40,
			XPPerCompanion:  25,
			CashMin:         15,
			CashSpread:      10,
		},
		Items: ItemConfig{
			Count:         200,
			Size:          32,
			PickupRadius:  30,
			BoostFactor:   1.5,
			BoostDuration: 5000,
		},
		Fireflies: FireflyConfig{
			Count:        3000,
			XP:           10,
			Size:         32,
			MaxSize:      64,
			PickupRadius: 40,
			Drift:        9,
			JarCap:       999,
		},
		Projectile: ProjectileConfig{
			Speed:     480,
			Radius:    6,
			Lifetime:  2000,
			HitRadius: 20,
		},
		Particles: ParticleConfig{
			Decay:    1.2,
			Gravity:  360,
			SpeedMin: 120,
			SpeedMax: 300,
		},
		Progress: ProgressConfig{
			FirstThreshold: 100,
			Growth:         1.5,
			LevelBurst:     30,
		},
		Interaction: InteractionConfig{
			ChestRange:    80,
			BuildingRange: 200,
			ExitCooldown:  500,
		},
		Interior: InteriorConfig{
			Margin:        10,
			Wall:          35,
			ShopHeight:    200,
			DoorClearance: 60,
			WanderSpeed:   30,
			WanderMin:     2000,
			WanderMax:     5000,
		},
	}
}

// LoadConfig loads simulation config from a YAML file on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configs the simulation cannot run with
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("invalid world size: %.0fx%.0f", c.World.Width, c.World.Height)
	}
	if c.Clock.DayLength <= 0 {
		return fmt.Errorf("day_length_ms must be positive")
	}
	if len(c.Chests.Tiers) == 0 {
		return fmt.Errorf("chest tier table is empty")
	}
	for i, t := range c.Chests.Tiers {
		if t.MinCompanions < 1 || t.MaxCompanions < t.MinCompanions {
			return fmt.Errorf("tier %d: invalid companion range %d-%d", i, t.MinCompanions, t.MaxCompanions)
		}
		if t.Cost < 0 {
			return fmt.Errorf("tier %d: negative cost", i)
		}
	}
	if len(c.Companion.Types) == 0 {
		return fmt.Errorf("companion types are empty")
	}
	if c.Progress.Growth <= 1 || c.Progress.FirstThreshold <= 0 {
		return fmt.Errorf("invalid leveling curve")
	}
	return nil
}

// MaxTier returns the highest tier index in the table.
func (c *Config) MaxTier() int {
	return len(c.Chests.Tiers) - 1
}
