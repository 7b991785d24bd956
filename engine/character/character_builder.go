package character

import "github.com/Carmen-Shannon/oxy-meadow/common"

// CharacterBuilderOption is a functional option for configuring a Character.
// Use the With* functions to create options.
type CharacterBuilderOption func(*characterImpl)

// WithGravity sets the vertical acceleration in units/s² (negative pulls down).
//
// Parameters:
//   - gravity: the vertical acceleration
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithGravity(gravity float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.gravity = gravity
	}
}

// WithRunSpeed sets the horizontal speed in units/s at full input.
//
// Parameters:
//   - speed: the run speed
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithRunSpeed(speed float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.runSpeed = speed
	}
}

// WithJumpVelocity sets the upward velocity applied by a successful jump.
//
// Parameters:
//   - velocity: the jump velocity in units/s
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithJumpVelocity(velocity float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.jumpVelocity = velocity
	}
}

// WithGroundY sets the height of the ground plane. The start position is moved onto the new ground
// unless WithPosition is applied afterwards.
//
// Parameters:
//   - groundY: the ground height
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithGroundY(groundY float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.groundY = groundY
		c.position[1] = groundY
	}
}

// WithPosition sets the initial position. Positions below the ground are raised onto it.
//
// Parameters:
//   - position: the initial world-space position
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithPosition(position common.Vec3) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.position = position
	}
}

// WithVelocity sets the initial velocity.
//
// Parameters:
//   - velocity: the initial velocity
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithVelocity(velocity common.Vec3) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.velocity = velocity
	}
}

// WithYaw sets the initial facing yaw in radians.
func WithYaw(yaw float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.yaw = yaw
	}
}

// WithTurnRate sets how quickly facing converges on the movement direction, as a fraction of the
// remaining angle per second.
func WithTurnRate(rate float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.turnRate = rate
	}
}

// WithAirPolicy selects how horizontal velocity behaves while airborne.
// airSpeedFactor scales run speed in the air and is only used by AirPolicyFree.
//
// Parameters:
//   - policy: the AirPolicy to use
//   - airSpeedFactor: the airborne speed multiplier
//
// Returns:
//   - CharacterBuilderOption: option function to apply
func WithAirPolicy(policy AirPolicy, airSpeedFactor float32) CharacterBuilderOption {
	return func(c *characterImpl) {
		c.airPolicy = policy
		c.airSpeedFactor = airSpeedFactor
	}
}
