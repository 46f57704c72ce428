//go:build darwin
// +build darwin

package cli

import (
	"github.com/JuulLabs-OSS/cbgo"
)

func OSSpecificInit() {
	cbgo.SetLogLevel(HapctlLogLevel)
}
