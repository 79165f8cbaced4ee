package reverb

import "github.com/cwbudde/dsp256/dsp/module"

func init() {
	module.Default.MustRegister(module.TypeHallReverb.Key(), func() (module.Module, error) {
		return New()
	})
}
