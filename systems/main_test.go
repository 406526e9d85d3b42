package systems

import (
	"os"
	"testing"

	"github.com/mkrall/crowdctl/config"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}
