package tracer

import "time"

// A contiguous range [Start, End) of pixel indices in row-major order.
type Block struct {
	Start uint32
	End   uint32
}

// Get the number of pixels in the block.
func (b Block) Len() uint32 {
	return b.End - b.Start
}

// Worker statistics.
type Stats struct {
	// The rendered block.
	Block Block

	// The time for rendering this block.
	RenderTime time.Duration
}

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split a frame of pixelCount pixels into one block per worker. The
	// returned blocks must not overlap and must cover every pixel.
	Schedule(pixelCount uint32, numWorkers int) []Block
}

// The equal scheduler hands every worker the same number of pixels.
type equalScheduler struct{}

// Create a scheduler that splits frames into equally sized blocks.
func EqualScheduler() BlockScheduler {
	return equalScheduler{}
}

// Split the frame into numWorkers contiguous blocks of equal size. The last
// block also receives the pixels left over by the integer division. The
// worker count is capped to the pixel count so no block is empty.
func (equalScheduler) Schedule(pixelCount uint32, numWorkers int) []Block {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if pixelCount > 0 && uint32(numWorkers) > pixelCount {
		numWorkers = int(pixelCount)
	}

	blockSize := pixelCount / uint32(numWorkers)
	blocks := make([]Block, numWorkers)
	for index := range blocks {
		blocks[index] = Block{
			Start: uint32(index) * blockSize,
			End:   uint32(index+1) * blockSize,
		}
	}
	blocks[numWorkers-1].End = pixelCount

	return blocks
}

// Check that blocks form a disjoint, exhaustive cover of [0, pixelCount)
// when laid out in order.
func ValidateBlocks(blocks []Block, pixelCount uint32) bool {
	var next uint32
	for _, block := range blocks {
		if block.Start != next || block.End < block.Start {
			return false
		}
		next = block.End
	}
	return next == pixelCount
}
