package export

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
	"github.com/san-kum/armrig/internal/script"
	"github.com/san-kum/armrig/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot,
// colored by the cell's ink.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			pattern := int(canvas.Grid[row][col] - 0x2800)
			if pattern <= 0 {
				continue
			}
			fill := inkColor(theme, canvas.Inks[row][col])
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func inkColor(theme viz.Theme, ink viz.Ink) string {
	switch ink {
	case viz.InkGrid:
		return string(theme.Grid)
	case viz.InkHand:
		return string(theme.Hand)
	case viz.InkHandle:
		return string(theme.Handle)
	case viz.InkActive:
		return string(theme.Active)
	}
	return string(theme.Bone)
}

// HandPath replays the joint orientations of each sample onto arm and
// returns where the hand appeared on screen, in NDC. Samples whose hand is
// behind the camera are dropped. The arm is left in the last sampled pose.
func HandPath(arm *rig.Arm, samples []script.Sample, cam pointer.Camera) []mgl64.Vec2 {
	hand, ok := arm.Index(rig.Hand)
	if !ok {
		return nil
	}
	out := make([]mgl64.Vec2, 0, len(samples))
	for _, s := range samples {
		for _, js := range s.Joints {
			if j, ok := arm.Joint(js.ID); ok {
				j.Current, j.Target = js.Current, js.Target
			}
		}
		if p, ok := cam.Project(arm.WorldPose(hand).Position); ok {
			out = append(out, p)
		}
	}
	return out
}

// PathToSVG draws points as a polyline scaled to fit width x height.
func PathToSVG(points []mgl64.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
