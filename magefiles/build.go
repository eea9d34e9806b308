//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the viewer binary into bin/.
func (Build) Viewer() error {
	if err := goModDownload(); err != nil {
		return err
	}
	fmt.Println("Building viewer...")
	if _, err := executeCmd("go", withArgs("build", "-o", viewerBinary(), "."), withStream()); err != nil {
		return err
	}
	return nil
}
