// Package save defines the versioned save document, reads and writes it, and
// publishes its JSON Schema.
package save

import (
	"time"

	"chosenoffset.com/cattown/internal/audio"
)

// Version is written into every document. Any non-empty version is accepted
// on load.
const Version = "1.0.0"

// Document is one complete snapshot of a running game. Times are in
// milliseconds.
type Document struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	Player *Player `json:"player"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xpToNextLevel"`
	CatCash       int `json:"catCash"`
	FireflyCount  int `json:"fireflyCount"`

	GameTime    float64 `json:"gameTime"`
	SessionTime float64 `json:"sessionTime"`
	TimeOfDay   float64 `json:"timeOfDay"`
	IsNight     bool    `json:"isNight"`
	Camera      Point   `json:"camera"`

	Companions        []Companion `json:"companions"`
	DroppedCompanions []Dropped   `json:"droppedCompanions"`
	Items             []Item      `json:"items"`
	Chests            []Chest     `json:"chests"`
	Fireflies         []Firefly   `json:"fireflies"`

	HouseFurniture     map[string][]Furniture `json:"houseFurniture"`
	FurnitureHues      map[string]float64     `json:"furnitureHues"`
	FurnitureSizes     map[string]float64     `json:"furnitureSizes"`
	FurnitureRotations map[string]int         `json:"furnitureRotations"`

	IsInsideHouse  bool   `json:"isInsideHouse"`
	CurrentHouseID string `json:"currentHouseId"`

	Audio *audio.State `json:"audio,omitempty"`
}

// Point is a plain coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is the persisted player state. SpeedBoostEndTime is session time;
// zero means no boost.
type Player struct {
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	IsCat             bool    `json:"isCat"`
	Speed             float64 `json:"speed"`
	BaseSpeed         float64 `json:"baseSpeed"`
	SpeedBoostEndTime float64 `json:"speedBoostEndTime"`
	BoostColor        string  `json:"boostColor,omitempty"`
	FacingRight       bool    `json:"facingRight"`
}

// Companion is a chain member.
type Companion struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Type           string  `json:"type"`
	SizeMultiplier float64 `json:"sizeMultiplier"`
}

// Dropped is a companion left behind. HouseX and HouseY are room coordinates
// and only meaningful when IsInHouse.
type Dropped struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Type      string    `json:"type"`
	IsInHouse bool      `json:"isInHouse"`
	HouseID   string    `json:"houseId,omitempty"`
	HouseX    float64   `json:"houseX,omitempty"`
	HouseY    float64   `json:"houseY,omitempty"`
	Companion Companion `json:"companion"`
}

// Item is a collectible lying in the world.
type Item struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// Chest keeps every tier-derived field so a loaded chest never re-derives
// its tier from position.
type Chest struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Opened         bool    `json:"opened"`
	Tier           int     `json:"tier"`
	Color          string  `json:"color"`
	SizeMultiplier float64 `json:"sizeMultiplier"`
	FireflyCost    int     `json:"fireflyCost"`
	CompanionCount int     `json:"companionCount"`
	HitCount       int     `json:"hitCount,omitempty"`
}

// Firefly is a live firefly. X and Y are its centre.
type Firefly struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Hue       float64 `json:"hue"`
	XPValue   int     `json:"xpValue"`
	Size      float64 `json:"size"`
	IsRainbow bool    `json:"isRainbow"`
}

// Furniture is one placed piece.
type Furniture struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"`
	Hue      float64 `json:"hue"`
	Size     float64 `json:"size"`
}
