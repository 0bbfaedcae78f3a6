package gui

import (
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColBone    = rl.NewColor(180, 180, 180, 255)
	ColHandle  = rl.NewColor(255, 255, 255, 255)
	ColActive  = rl.NewColor(0, 255, 136, 255)
	ColHand    = rl.NewColor(140, 140, 140, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColPlane   = rl.NewColor(60, 90, 160, 255)
)

const (
	screenWidth  = 1280
	screenHeight = 720
	orbitStep    = math.Pi / 90
)

type App struct {
	Rot       animate.Rotator
	View      pointer.Camera
	Camera    rl.Camera3D
	Font      rl.Font
	ShowPlane bool
	Quit      bool
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(screenWidth, screenHeight, "armrig")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(rot animate.Rotator, cam pointer.Camera) *App {
	a := &App{
		Rot:  rot,
		View: cam,
		Font: rl.GetFontDefault(),
	}
	a.syncCamera()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(rot animate.Rotator, cam pointer.Camera) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(rot, cam).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.Quit {
		a.Update()
		a.Draw()
	}
}

// syncCamera copies the picking camera into the raylib one so rays and
// rendering agree.
func (a *App) syncCamera() {
	a.View.Aspect = float64(rl.GetScreenWidth()) / math.Max(1, float64(rl.GetScreenHeight()))
	a.Camera = rl.NewCamera3D(v3(a.View.Position), v3(a.View.Target), v3(a.View.Up), float32(a.View.FOV), rl.CameraPerspective)
}

func (a *App) mouseNDC() mgl64.Vec2 {
	m := rl.GetMousePosition()
	return pointer.ScreenToNDC(float64(m.X), float64(m.Y), float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.Quit = true
	case rl.IsKeyPressed(rl.KeyR):
		a.Rot.Reset()
	case rl.IsKeyPressed(rl.KeyP):
		a.ShowPlane = !a.ShowPlane
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.View = a.View.Orbit(-orbitStep)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.View = a.View.Orbit(orbitStep)
	}
	a.syncCamera()

	ndc := a.mouseNDC()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		arm := a.Rot.Arm()
		id, ok := arm.Pick(a.View.Ray(ndc))
		if !ok {
			a.Rot.PointerMiss()
			break
		}
		if err := a.Rot.PointerDown(id, ndc); err != nil {
			log.Printf("pointer down %s: %v", id, err)
		}
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		a.Rot.PointerUp()
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		a.Rot.PointerMove(ndc)
	}

	a.Rot.Tick(a.View)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawGrid(10, 1)
	a.drawArm()
	if a.ShowPlane {
		a.drawPlane()
	}
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("armrig", 30, 30, 24, ColHandle)

	status, col := "IDLE", ColTextDim
	if id, ok := a.Rot.Active(); ok {
		status, col = "DRAG "+string(id), ColActive
	}
	a.drawText(status, 140, 34, 16, col)

	arm := a.Rot.Arm()
	y := 70
	for i, j := range arm.Joints {
		if j.Rigid {
			continue
		}
		a.drawText(fmt.Sprintf("%-9s %6.1f / %.0f deg", j.ID, orient.Degrees(arm.Swing(i)), orient.Degrees(j.Limits.Cone())), 30, y, 14, ColText)
		y += 20
	}

	h := rl.GetScreenHeight()
	a.drawText("[DRAG] HANDLES  [LEFT/RIGHT] ORBIT  [R] RESET  [P] PLANE  [Q] QUIT", 30, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS  tick %d", int32(rl.GetFPS()), a.Rot.Ticks()), rl.GetScreenWidth()-180, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func v3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}
