package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	mode   ProjectionMode
	aspect float32
	near   float32
	far    float32
	ortho  OrthoBounds

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4

	controller FreeCamera
}

// Camera defines the interface for the camera rig.
// The rig holds projection settings and computes view/projection matrices
// from an attached FreeCamera controller each frame via Update().
type Camera interface {
	// Fov returns the vertical field of view in radians, taken from the controller's zoom.
	// Returns 0 if no controller is attached.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Projection returns the active projection mode.
	//
	// Returns:
	//   - ProjectionMode: perspective or orthographic
	Projection() ProjectionMode

	// OrthoBounds returns the orthographic view-volume extents.
	//
	// Returns:
	//   - OrthoBounds: left/right/bottom/top extents
	OrthoBounds() OrthoBounds

	// ViewMatrix returns the view matrix computed by the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix computed by the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view as computed by the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the current projection matrix.
	// The zero matrix is returned when the projection is singular.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse projection matrix
	InverseProjectionMatrix() mgl32.Mat4

	// Frustum returns the clip planes of the current view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: the six normalized frustum planes
	Frustum() common.Frustum

	// Uniform packs the current matrices, controller position, look direction, field of view
	// and projection mode for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: the GPU-aligned camera uniform
	Uniform() GPUCameraUniform

	// Controller returns the attached FreeCamera.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - FreeCamera: the attached controller or nil
	Controller() FreeCamera

	// Update reads position, orientation and zoom from the controller and recomputes matrices.
	// Should be called once per frame after input for that frame has been processed.
	// If no controller is attached, this method does nothing.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetProjection switches the projection mode and recomputes matrices.
	//
	// Parameters:
	//   - mode: perspective or orthographic
	SetProjection(mode ProjectionMode)

	// ToggleProjection flips between perspective and orthographic and recomputes matrices.
	//
	// Returns:
	//   - ProjectionMode: the mode after toggling
	ToggleProjection() ProjectionMode

	// SetOrthoBounds sets the orthographic view-volume extents and recomputes matrices.
	//
	// Parameters:
	//   - bounds: left/right/bottom/top extents
	SetOrthoBounds(bounds OrthoBounds)

	// SetController attaches a FreeCamera to the rig and recomputes matrices.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl FreeCamera)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default projection settings:
// perspective, aspect 1, near 0.1, far 100, orthographic bounds ±2.
// A controller must be attached via SetController or WithController option
// before view data is available.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                      &sync.Mutex{},
		mode:                    ProjectionPerspective,
		aspect:                  1.0,
		near:                    0.1,
		far:                     100.0,
		ortho:                   OrthoBounds{Left: -2, Right: 2, Bottom: -2, Top: 2},
		viewMatrix:              mgl32.Ident4(),
		projectionMatrix:        mgl32.Ident4(),
		viewProjectionMatrix:    mgl32.Ident4(),
		inverseProjectionMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return 0
	}
	return mgl32.DegToRad(c.controller.Zoom())
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Projection() ProjectionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *cameraImpl) OrthoBounds() OrthoBounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ortho
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := GPUCameraUniform{
		ViewProj:   c.viewProjectionMatrix,
		View:       c.viewMatrix,
		Projection: uint32(c.mode),
	}
	if c.controller != nil {
		u.CameraPosition = c.controller.Position()
		u.CameraFront = c.controller.Front()
		if c.mode == ProjectionPerspective {
			u.Fov = mgl32.DegToRad(c.controller.Zoom())
		}
	}
	return u
}

func (c *cameraImpl) Controller() FreeCamera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetProjection(mode ProjectionMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.updateMatrices()
}

func (c *cameraImpl) ToggleProjection() ProjectionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ProjectionPerspective {
		c.mode = ProjectionOrthographic
	} else {
		c.mode = ProjectionPerspective
	}
	c.updateMatrices()
	return c.mode
}

func (c *cameraImpl) SetOrthoBounds(bounds OrthoBounds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ortho = bounds
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl FreeCamera) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// It reads view and zoom from the attached controller. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	c.viewMatrix = c.controller.ViewMatrix()
	c.projectionMatrix = projectionMatrix(c.mode, c.controller.Zoom(), c.aspect, c.near, c.far, c.ortho)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}
