// Package main provides the normkit CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/normkit/normkit/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if flag.NArg() > 0 {
		switch flag.Arg(0) {
		case "version":
			fmt.Printf("normkit %s\n", version)
			return
		case "devices":
			listDevices()
			return
		}
	}

	fmt.Println("normkit - fused layer-normalization bindings for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    List available GPU adapters")
}

func listDevices() {
	fmt.Println("CPU: available (reference kernel)")

	if !webgpu.IsAvailable() {
		fmt.Println("WebGPU: not available")
		return
	}

	adapters, err := webgpu.ListAdapters()
	if err != nil {
		klog.Errorf("failed to list WebGPU adapters: %v", err)
		os.Exit(1)
	}
	for _, info := range adapters {
		fmt.Printf("WebGPU: %s (%s)\n", info.Device, info.Vendor)
	}
}
