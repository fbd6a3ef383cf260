package constraint

// Constraint is resolved once per step, in the order the narrow phase produced it
type Constraint interface {
	Solve(coefficients Coefficients)
}

// Coefficients are the solver policy values shared by every contact of a step
type Coefficients struct {
	// Elasticity is the restitution: 0 = no rebound, 1 = perfect rebound
	Elasticity float64 `yaml:"elasticity"`
	// Friction scales the normal impulse into the Coulomb friction limit
	Friction float64 `yaml:"friction"`
	// Damping is the fraction of the penetration depth corrected each step
	Damping float64 `yaml:"damping"`
}

// DefaultCoefficients returns the tuning used by the engine when nothing is configured
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Elasticity: 0.1,
		Friction:   0.6,
		Damping:    0.2,
	}
}
