package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/LeonIngman/LTH-Game-sub001/test/bdd/steps"
	"github.com/LeonIngman/LTH-Game-sub001/test/helpers"
)

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic(err)
	}

	code := m.Run()

	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeDayScenario(sc)
	steps.InitializeScoreScenario(sc)
	// Session steps hit the shared database; tables are truncated before every scenario
	steps.InitializeSessionScenario(sc)
}
