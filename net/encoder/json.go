package encoder

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

// WriteWeightsToFile writes the checkpoint to an lzw compressed file
func (f Network) WriteWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteWeights(file)
	file.Close()
	return err
}

// WriteWeights writes the checkpoint to a writer
func (f Network) WriteWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)

	if _, err := lw.Write([]byte("[\n")); err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		if i != 0 {
			if _, err := lw.Write([]byte(",\n")); err != nil {
				return err
			}
		}
		if err := f.GetCell(i).WriteJSON(lw); err != nil {
			return err
		}
	}
	if _, err := lw.Write([]byte("\n]\n")); err != nil {
		return err
	}
	return lw.Close()
}

// ReadWeightsFromFile reads a checkpoint from an lzw compressed file
func (f *Network) ReadWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = f.ReadWeights(file)
	file.Close()
	return err
}

// ReadWeights reads a checkpoint from a reader. The network must already
// have its architecture built, only cell contents are replaced.
func (f *Network) ReadWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	dec := json.NewDecoder(lr)
	if _, err := dec.Token(); err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		if err := f.GetCell(i).ReadJSON(dec); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}
