package viewport

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithOutput sets the renderer resized alongside the camera.
//
// Parameters:
//   - output: the renderer
//
// Returns:
//   - ControllerBuilderOption: a function that sets the output
func WithOutput(output OutputSizer) ControllerBuilderOption {
	return func(c *controller) {
		c.output = output
	}
}
