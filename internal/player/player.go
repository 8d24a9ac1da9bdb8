// Package player holds the mutable state of one game session.
package player

// Player tracks score, lives and the shots left in the current round.
// It is owned by the game loop and is not safe for concurrent use.
type Player struct {
	Name  string
	Score int

	lives      int
	shots      int
	totalLives int
	totalShots int
}

// New creates a player with full lives and a full magazine.
func New(name string, shots, lives int) *Player {
	return &Player{
		Name:       name,
		lives:      lives,
		shots:      shots,
		totalLives: lives,
		totalShots: shots,
	}
}

// Lives returns the remaining lives.
func (p *Player) Lives() int { return p.lives }

// TotalLives returns the lives the player started with.
func (p *Player) TotalLives() int { return p.totalLives }

// Shots returns the shots left this round.
func (p *Player) Shots() int { return p.shots }

// TotalShots returns the magazine size.
func (p *Player) TotalShots() int { return p.totalShots }

// RecordHit spends a shot and adds points to the score.
func (p *Player) RecordHit(points int) {
	p.spend()
	p.Score += points
}

// RecordMiss spends a shot.
func (p *Player) RecordMiss() {
	p.spend()
}

func (p *Player) spend() {
	if p.shots > 0 {
		p.shots--
	}
}

// LoseLife removes one life, never going below zero.
func (p *Player) LoseLife() {
	if p.lives > 0 {
		p.lives--
	}
}

// ResetShots refills the magazine.
func (p *Player) ResetShots() {
	p.shots = p.totalShots
}

// SetShotCount sets the remaining shots. Values above the magazine size or
// below zero are ignored.
func (p *Player) SetShotCount(n int) {
	if n > p.totalShots || n < 0 {
		return
	}
	p.shots = n
}

// HasLivesRemaining reports whether the game can continue.
func (p *Player) HasLivesRemaining() bool {
	return p.lives > 0
}
