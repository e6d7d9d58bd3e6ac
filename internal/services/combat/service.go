package combat

import (
	"log/slog"
	"math"

	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/registry"
	"github.com/worldsmp/worlds-server/internal/services/players"
)

// Unarmed combat constants, used when the attacker's held item is not a
// registered weapon.
const (
	unarmedDamage    = 10
	unarmedKnockback = 0.3

	// knockbackLift is the fixed vertical component of every knockback.
	knockbackLift = 0.25
)

// Outcome is the result of a resolved attack: a hit broadcast and, when the
// target died from it, a death broadcast.
type Outcome struct {
	Hit   model.PlayerHitPayload
	Death *model.PlayerDeathPayload
}

// Service resolves attacks between players using the weapon registry.
type Service struct {
	registry *registry.Registry
	players  *players.Service
	random   random.Random
	logger   *slog.Logger
}

// New creates a combat resolver.
func New(reg *registry.Registry, playerStore *players.Service, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		registry: reg,
		players:  playerStore,
		random:   rnd,
		logger:   logger.With(slog.String("component", "combat")),
	}
}

// ResolveAttack computes and applies the damage of attacker hitting target.
// Returns nil when either party is unknown or already dead.
func (s *Service) ResolveAttack(attackerID, targetID model.ConnID) *Outcome {
	attacker, ok := s.players.Get(attackerID)
	if !ok || attacker.IsDead {
		return nil
	}
	target, ok := s.players.Get(targetID)
	if !ok || target.IsDead {
		return nil
	}

	damage := unarmedDamage
	knockbackStrength := unarmedKnockback
	var weapon *model.WeaponDef
	if stack := attacker.HeldStack(); stack != nil && stack.Type == model.ItemTypeWeapon {
		if def, found := s.registry.Weapon(stack.Art); found {
			weapon = &def
			damage = def.Damage
			knockbackStrength = def.Knockback
		}
	}

	isCrit := false
	if weapon != nil && s.random.Float64() < weapon.CritChance {
		damage = int(math.Floor(float64(damage) * weapon.CritMultiplier))
		isCrit = true
	}

	health, died, ok := s.players.ApplyDamage(targetID, damage)
	if !ok {
		return nil
	}

	outcome := &Outcome{
		Hit: model.PlayerHitPayload{
			ID:        targetID,
			Health:    health,
			By:        attackerID,
			Damage:    damage,
			IsCrit:    isCrit,
			Knockback: knockbackVector(attacker.Position, target.Position, knockbackStrength),
		},
	}

	if died {
		outcome.Death = &model.PlayerDeathPayload{
			ID:         targetID,
			KillerName: attacker.Username,
			VictimName: target.Username,
		}
		s.logger.Info("player killed",
			slog.String("killer", attacker.Username),
			slog.String("victim", target.Username))
	}

	return outcome
}

// knockbackVector is the horizontal attacker->target direction scaled by the
// weapon's knockback strength, with a fixed vertical lift. Coincident
// positions fall back to a unit +X direction.
func knockbackVector(attacker, target model.Vec3, strength float64) model.Vec3 {
	dx := target.X - attacker.X
	dz := target.Z - attacker.Z
	dist := math.Sqrt(dx*dx + dz*dz)
	if dist == 0 {
		dx, dist = 1, 1
	}
	return model.Vec3{
		X: dx / dist * strength,
		Y: knockbackLift,
		Z: dz / dist * strength,
	}
}
