package present

import _ "embed"

// blitWGSL is the fullscreen-triangle shader that samples the uploaded
// framebuffer texture straight to the swapchain.
//
//go:embed blit.wgsl
var blitWGSL string
