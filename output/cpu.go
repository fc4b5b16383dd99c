package output

import "golang.org/x/sys/cpu"

// CPUFeatures lists the instruction set extensions of the host that matter
// for memory bound loops such as counting and scatter passes.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}

	add(cpu.X86.HasSSE42, "sse4.2")
	add(cpu.X86.HasAVX, "avx")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasAVX512F, "avx512f")
	add(cpu.X86.HasBMI2, "bmi2")
	add(cpu.X86.HasERMS, "erms")
	add(cpu.ARM64.HasASIMD, "asimd")
	add(cpu.ARM64.HasSVE, "sve")
	add(cpu.ARM64.HasATOMICS, "lse")
	return features
}
