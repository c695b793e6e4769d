// Package cubesim is an animated Rubik's cube model for interactive hosts.
//
// # Features
//
//   - 3x3x3 cubie model with quarter turns of any face or middle slice
//   - Frame-driven turn animation with a per-tick time delta
//   - Model transforms and per-facelet draw calls for a graphics host
//   - Standard move notation (R, U', F2, M, E, S)
//   - Mirroring a GoCube smart cube over Bluetooth LE
//
// # Frame Loop
//
// The host owns a RubiksCube and drives it once per frame. Input is read
// before Tick so a turn requested this frame already moves this frame:
//
//	cube := cubesim.New(cubesim.WithTurnDuration(200 * time.Millisecond))
//
//	for !window.ShouldClose() {
//	    if cmd, ok := input.Poll(); ok {
//	        // ErrRotationBusy means a turn is still animating: drop the press.
//	        _ = cube.BeginMove(cmd)
//	    }
//	    if err := cube.Tick(frameTime); err != nil {
//	        log.Fatal(err)
//	    }
//	    cube.Draw(drawer)
//	}
//
// # Headless Use
//
// Apply commits turns instantly, without animation:
//
//	cube := cubesim.New()
//	cube.Apply(cubesim.R, cubesim.U, cubesim.RPrime, cubesim.UPrime)
//
//	// Or from notation
//	cube.ApplyNotation("F B2 L' D")
//
//	fmt.Println("Solved:", cube.IsSolved())
//	fmt.Println(cube.String())
//
// # Scripted Turns
//
// RubiksCube never queues: a turn requested mid-animation is rejected. Hosts
// that replay a script (a scramble, a journal, a smart cube) push it into a
// Sequencer and call Feed every frame before Tick.
package cubesim
