// Package all registers every simulation with the core registry.
package all

import (
	_ "canvas-sims/internal/sims/expando"
	_ "canvas-sims/internal/sims/forester"
	_ "canvas-sims/internal/sims/imagetrace"
	_ "canvas-sims/internal/sims/swarm"
	_ "canvas-sims/internal/sims/wigglewacker"
)
