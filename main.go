/*
Shady is an interactive viewer for experimenting with OpenGL shading:
view, model and light transforms driven by the mouse, Phong lighting,
texture filtering and bump/parallax mapping.
*/
package main

import "github.com/spaghettifunk/shady/cmd"

func main() {
	cmd.Execute()
}
