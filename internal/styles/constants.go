package styles

const H_PADDING int = 1
const BUBBLE_V_PADDING int = 0

// widths relative to viewport width
const WIDTH_PROPORTION_BUBBLE float64 = 6 / 7.
const WIDTH_PROPORTION_EDITOR float64 = 1 / 2.

const EDITOR_MIN_WIDTH int = 30
const STATUS_BAR_HEIGHT int = 1
const PANEL_HEIGHT int = 3
