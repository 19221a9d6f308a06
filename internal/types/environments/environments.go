package environments

type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
	Staging     Environment = "staging"
	Test        Environment = "test"
)

// Parse maps APP_ENV onto a known environment, falling back to Development.
func Parse(s string) Environment {
	switch env := Environment(s); env {
	case Production, Development, Staging, Test:
		return env
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e == Production
}
