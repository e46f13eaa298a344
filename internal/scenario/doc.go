// Package scenario turns a declarative [config.Scenario] into a populated
// world ready to run.
//
// Force and contact types are looked up in a [Registry] of factories:
//
//	reg := scenario.NewRegistry()
//	scene, err := reg.Build(config.GetPreset("bounce"), logger)
//	s := scenario.NewSimulator(scene)
//	result, err := s.Run(ctx, scene.SimConfig())
package scenario
