//go:build cuda

// Package cu implements the cell learning stage on CUDA. One kernel
// launch sweeps a batch of salts against both alphabets at once; the
// annealing ladder and the acceptance checks stay on the host.
package cu

import "crypto/rand"
import "encoding/binary"
import "fmt"
import mathrand "math/rand"
import "time"
import "unsafe"

import "gorgonia.org/cu"

import "github.com/selfexplain/classifier/cell"
import "github.com/selfexplain/classifier/datasets"
import "github.com/selfexplain/classifier/hash"
import "github.com/selfexplain/classifier/learning"
import "github.com/selfexplain/classifier/learning/cu/kernel"

// Training trains a single cell on a dataset d using the GPU.
func (h *HyperParameters) Training(d datasets.Splitter) (*cell.Cell, error) {
	if h.Seed {
		var b [8]byte
		rand.Read(b[:])
		mathrand.Seed(int64(binary.LittleEndian.Uint64(b[:])))
	}
	split := datasets.BalanceDataset(d.Split())
	retries := h.DeadlineRetry
	if retries <= 0 {
		retries = 1
	}
	var best *cell.Cell
	for i := 0; i < retries; i++ {
		_, c := h.Solve(split)
		if c != nil {
			if h.EndWhenSolved {
				return c, nil
			}
			if best == nil || c.Len() < best.Len() {
				best = c
			}
		}
	}
	if best != nil {
		return best, nil
	}
	return nil, learning.ErrUnsolved
}

// Solve runs one modulo ladder with the salt sweeps on the device.
// Most callers should use Training instead.
func (h *HyperParameters) Solve(d datasets.SplittedDataset) (int, *cell.Cell) {
	var alphabet [2][]uint32
	var bits byte = 1
	for cls := range d {
		for v := range d[cls] {
			alphabet[cls] = append(alphabet[cls], v)
			for b := byte(1); b <= 16; b++ {
				if v>>16 >= uint32(1)<<(b-1) {
					bits = b + 1
				}
			}
		}
	}
	maxl := uint32(len(alphabet[0]))
	if l := uint32(len(alphabet[1])); l > maxl {
		maxl = l
	}
	if maxl == 0 {
		return h.InitialLimit, nil
	}
	max := maxl * maxl
	if max < 4 {
		max = 4
	}

	if err := h.initCUDA(max, maxl); err != nil {
		h.backoff++
		time.Sleep(time.Duration(h.backoff) * time.Millisecond)
		h.backoff <<= 1
		return h.InitialLimit, nil
	}
	defer h.destroyCUDA()

	var program [][2]uint32
	limit := h.InitialLimit
	if limit <= 0 {
		limit = 1 << 10
	}
	for len(program) < limit {
		salt, ok := h.sweep(alphabet, max, maxl)
		if !ok {
			return limit - len(program), nil
		}
		program = append(program, [2]uint32{salt, max})
		alphabet = rehash(alphabet, salt, max)
		if separated(alphabet) {
			c, err := cell.New(program, bits)
			if err != nil {
				return limit - len(program), nil
			}
			return limit - len(program), c
		}
		maxl = uint32(len(alphabet[0]))
		if l := uint32(len(alphabet[1])); l > maxl {
			maxl = l
		}
		next := max - uint32(float64(max)*h.Rate())
		if next >= max {
			next = max - 1
		}
		if next < 2 {
			next = 2
		}
		max = next
	}
	return 0, nil
}

// separated reports whether every residue carries its class in the
// lowest bit, with no residue shared across classes.
func separated(alphabet [2][]uint32) bool {
	seen := map[uint32]byte{}
	for cls := range alphabet {
		for _, v := range alphabet[cls] {
			if v&1 != uint32(cls) {
				return false
			}
			if prev := seen[v]; prev != 0 && prev != byte(cls+1) {
				return false
			}
			seen[v] = byte(cls + 1)
		}
	}
	return true
}

func rehash(alphabet [2][]uint32, s, max uint32) (out [2][]uint32) {
	for cls := range alphabet {
		seen := map[uint32]struct{}{}
		for _, v := range alphabet[cls] {
			r := hash.Hash(v, s, max)
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out[cls] = append(out[cls], r)
		}
	}
	return out
}

// cudaTasks is how many salts one launch can mark residues for.
func (h *HyperParameters) cudaTasks(max uint32) int {
	mem := h.CuMemoryBytes
	if mem == 0 {
		memory, err := cu.Device(0).TotalMem()
		if err == nil && memory > 0 {
			portion := uint64(h.CuMemoryPortion)
			if portion == 0 {
				portion = 384
			}
			mem = uint64(memory) / portion
		}
		if mem < uint64(((max+3)/4)+4) {
			mem = uint64(((max + 3) / 4) + 4)
		}
		if mem > uint64(memory) {
			mem = uint64(memory)
		}
	}
	return int(mem / uint64(((max+3)/4)+4))
}

func nvTasks(tasks int) [2][3]int {
	const (
		MaxThreadsPerBlock = 1024
		MaxGridDimX        = 1024
		MaxGridDimY        = 1024
		MaxGridDimZ        = 64
	)
	numBlocksX := (tasks + MaxThreadsPerBlock - 1) / MaxThreadsPerBlock
	numBlocksY := 1
	numBlocksZ := 1
	if numBlocksX > MaxGridDimX {
		numBlocksY = (numBlocksX + MaxGridDimX - 1) / MaxGridDimX
		numBlocksX = MaxGridDimX
	}
	if numBlocksY > MaxGridDimY {
		numBlocksZ = (numBlocksY + MaxGridDimY - 1) / MaxGridDimY
		numBlocksY = MaxGridDimY
	}
	if numBlocksZ > MaxGridDimZ {
		fmt.Println("Too many tasks for the GPU.")
		return [2][3]int{}
	}
	return [2][3]int{{32, 32, 1}, {numBlocksX, numBlocksY, numBlocksZ}}
}

func (h *HyperParameters) initCUDA(max, maxl uint32) error {
	device, err := cu.GetDevice(0)
	if err != nil {
		fmt.Printf("Failed to get device: %v\n", err)
		return err
	}
	ctx, err := device.MakeContext(cu.SchedAuto)
	if err != nil {
		fmt.Printf("Failed to create context: %v\n", err)
		return err
	}
	err = ctx.Lock()
	if err != nil {
		fmt.Printf("Failed to lock context: %v\n", err)
		return err
	}
	inputSize := int64(maxl) * 2 * int64(unsafe.Sizeof(uint32(0)))
	dInput, err := cu.MemAlloc(inputSize)
	if err != nil {
		fmt.Printf("Failed to allocate device memory for input: %v\n", err)
		return err
	}
	inputNumsSize := 6 * int64(unsafe.Sizeof(uint32(0)))
	dInputNums, err := cu.MemAlloc(inputNumsSize)
	if err != nil {
		fmt.Printf("Failed to allocate device memory for input numbers: %v\n", err)
		return err
	}
	resultSize := 2 * int64(unsafe.Sizeof(uint32(0)))
	dResult, err := cu.MemAlloc(resultSize)
	if err != nil {
		fmt.Printf("Failed to allocate device memory for result: %v\n", err)
		return err
	}
	mod, err := cu.LoadData(kernel.PTXSweepCUDA)
	if err != nil {
		fmt.Printf("Failed to load module: %v\n", err)
		return err
	}
	fn, err := mod.Function("sweep")
	if err != nil {
		fmt.Printf("Failed to get function: %v\n", err)
		return err
	}
	stream, err := cu.MakeStream(cu.DefaultStream)
	if err != nil {
		fmt.Printf("Failed to make stream: %v\n", err)
		return err
	}
	h.ctx = &ctx
	h.input = &dInput
	h.inputNums = &dInputNums
	h.result = &dResult
	h.fn = &fn
	h.stream = &stream
	return nil
}

func (h *HyperParameters) destroyCUDA() {
	h.fn = nil
	h.stream = nil
	if h.input != nil {
		cu.MemFree(*h.input)
		h.input = nil
	}
	if h.inputNums != nil {
		cu.MemFree(*h.inputNums)
		h.inputNums = nil
	}
	if h.result != nil {
		cu.MemFree(*h.result)
		h.result = nil
	}
	if h.markerSet != nil {
		cu.MemFree(*h.markerSet)
		h.markerSet = nil
		h.markerSetSize = 0
	}
	if h.ctx != nil {
		h.ctx.Unlock()
		h.ctx.Destroy()
		h.ctx = nil
	}
}

// sweep launches the device search for one collision-free salt. Both
// alphabets are padded to maxl keys so the kernel sees a fixed layout.
func (h *HyperParameters) sweep(alphabet [2][]uint32, max, maxl uint32) (uint32, bool) {
	if h.Shuffle {
		for cls := range alphabet {
			mathrand.Shuffle(len(alphabet[cls]), func(i, j int) {
				alphabet[cls][i], alphabet[cls][j] = alphabet[cls][j], alphabet[cls][i]
			})
		}
	}
	flat := make([]uint32, 0, 2*maxl)
	for cls := range alphabet {
		flat = append(flat, alphabet[cls]...)
		for pad := uint32(len(alphabet[cls])); pad < maxl; pad++ {
			flat = append(flat, alphabet[cls][0])
		}
	}
	center := mathrand.Uint32() >> 1
	salt, ok := h.sweepCUDA(h.cudaTasks(max), center, max, maxl, flat)
	return salt, ok != 0
}

func (h *HyperParameters) sweepCUDA(tasks int, center, max, maxl uint32, flat []uint32) (salt, ok uint32) {
	var result [2]uint32

	x := nvTasks(tasks)

	inputSize := int64(maxl) * 2 * int64(unsafe.Sizeof(uint32(0)))
	inputNumsSize := 6 * int64(unsafe.Sizeof(uint32(0)))
	resultSize := 2 * int64(unsafe.Sizeof(uint32(0)))
	markerSize := int64(tasks) * int64(((max+3)/4)+4) * int64(unsafe.Sizeof(uint8(0)))

	dInput := *h.input
	dInputNums := *h.inputNums
	dResult := *h.result
	dFn := *h.fn
	dStream := *h.stream

	err := cu.SetCurrentContext(*h.ctx)
	if err != nil {
		fmt.Printf("Failed to set device context: %v\n", err)
		return
	}

	var dMarker cu.DevicePtr
	if h.markerSet != nil {
		dMarker = *h.markerSet
		if h.markerSetSize > 2*markerSize || h.markerSetSize < markerSize {
			err = cu.MemFree(dMarker)
			if err != nil {
				fmt.Printf("Failed to free marker set: %v\n", err)
				return
			}
			dMarker, err = cu.MemAlloc(markerSize)
			if err != nil {
				fmt.Printf("Failed to allocate device memory for marker set: %v\n", err)
				return
			}
			h.markerSetSize = markerSize
			h.markerSet = &dMarker
		}
	} else {
		dMarker, err = cu.MemAlloc(markerSize)
		if err != nil {
			fmt.Printf("Failed to allocate device memory for marker set: %v\n", err)
			return
		}
		h.markerSetSize = markerSize
		h.markerSet = &dMarker
	}

	err = cu.MemsetD32(dResult, 0, 2)
	if err != nil {
		fmt.Printf("Failed to set device memory for result: %v\n", err)
		return
	}
	if h.CuErase {
		err = cu.MemsetD8(dMarker, 0, markerSize)
		if err != nil {
			fmt.Printf("Failed to set device memory for marker set: %v\n", err)
			return
		}
	}
	err = cu.MemcpyHtoD(dInput, unsafe.Pointer(&flat[0]), inputSize)
	if err != nil {
		fmt.Printf("Failed to copy input data to device: %v\n", err)
		return
	}

	inputNumbers := [6]uint32{max, maxl, uint32(h.DeadlineMs), uint32(tasks), h.iter, center}
	err = cu.MemcpyHtoD(dInputNums, unsafe.Pointer(&inputNumbers[0]), inputNumsSize)
	if err != nil {
		fmt.Printf("Failed to copy input numbers to device: %v\n", err)
		return
	}

	args := []unsafe.Pointer{
		unsafe.Pointer(&dMarker),
		unsafe.Pointer(&dInputNums),
		unsafe.Pointer(&dInput),
		unsafe.Pointer(&dResult),
	}
	err = dFn.LaunchAndSync(x[1][0], x[1][1], x[1][2], x[0][0], x[0][1], x[0][2], 0, dStream, args)
	if err != nil {
		fmt.Printf("Failed to launch kernel: %v\n", err)
		return
	}
	h.iter++

	err = cu.MemcpyDtoH(unsafe.Pointer(&result[0]), dResult, resultSize)
	if err != nil {
		fmt.Printf("Failed to copy result data from device: %v\n", err)
		return
	}
	return result[0], result[1]
}
