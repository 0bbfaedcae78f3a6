// Package viz draws the arm in a terminal.
//
//   - [Canvas]: Braille-based pixel canvas, two by four dots per cell
//   - [Scene]: projects bones, hand, handles and a floor grid through a
//     camera onto a canvas
//   - [Theme]: ink colors, cycled from the TUI
//
// Canvas coordinates map onto normalized device coordinates with
// [CellToNDC], so a mouse cell can be turned into a pick ray.
package viz
