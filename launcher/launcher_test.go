package launcher

import "context"
import "os"
import "path/filepath"
import "runtime"
import "strings"
import "testing"

import "github.com/stretchr/testify/require"
import "go.uber.org/zap"

// fakeEntrypoint writes a shell script that records its environment and
// arguments, bumps an invocation counter, and exits with code.
func fakeEntrypoint(t *testing.T, dir string, code int) (script, argsFile, envFile, countFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script entry point")
	}
	script = filepath.Join(dir, "train_sst2")
	argsFile = filepath.Join(dir, "args.txt")
	envFile = filepath.Join(dir, "env.txt")
	countFile = filepath.Join(dir, "count.txt")
	body := "#!/bin/sh\n" +
		"for a in \"$@\"; do printf '%s\\n' \"$a\" >> " + argsFile + "; done\n" +
		"env > " + envFile + "\n" +
		"printf x >> " + countFile + "\n" +
		"exit " + itoa(code) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0755))
	return
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for ; n > 0; n /= 10 {
		b = append([]byte{byte('0' + n%10)}, b...)
	}
	return string(b)
}

func newSpec(t *testing.T, script string) *Spec {
	t.Helper()
	s, err := SST2(script, zap.NewNop())
	require.NoError(t, err)
	s.Stdout = nil
	s.Stderr = nil
	return s
}

func TestArgsExactOrder(t *testing.T) {
	dir := t.TempDir()
	script, argsFile, _, _ := fakeEntrypoint(t, dir, 0)
	s := newSpec(t, script)
	require.Equal(t, 0, s.Launch(context.Background()))
	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	want := "--dataset_basedir\ndata/SST-2-XLNet/\n" +
		"--lr\n2e-5\n" +
		"--max_epochs\n20\n" +
		"--gpus\n0\n" +
		"--concept_store\ndata/SST-2-XLNet/concept_store.pt\n"
	require.Equal(t, want, string(got))
}

func TestArgsDeterministic(t *testing.T) {
	dir := t.TempDir()
	script, _, _, _ := fakeEntrypoint(t, dir, 0)
	s := newSpec(t, script)
	first := strings.Join(s.Args(), " ")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, strings.Join(s.Args(), " "))
	}
}

func TestTokenizerParallelismInChildOnly(t *testing.T) {
	dir := t.TempDir()
	script, _, envFile, _ := fakeEntrypoint(t, dir, 0)
	require.NoError(t, os.Unsetenv("TOKENIZERS_PARALLELISM"))
	s := newSpec(t, script)
	require.Equal(t, 0, s.Launch(context.Background()))
	env, err := os.ReadFile(envFile)
	require.NoError(t, err)
	require.Contains(t, string(env), TokenizersParallelism)
	_, inParent := os.LookupEnv("TOKENIZERS_PARALLELISM")
	require.False(t, inParent)
}

func TestInvokedExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	script, _, _, countFile := fakeEntrypoint(t, dir, 0)
	s := newSpec(t, script)
	require.Equal(t, 0, s.Launch(context.Background()))
	count, err := os.ReadFile(countFile)
	require.NoError(t, err)
	require.Equal(t, "x", string(count))
}

func TestExitCodePropagation(t *testing.T) {
	for _, code := range []int{0, 1, 3, 77} {
		dir := t.TempDir()
		script, _, _, _ := fakeEntrypoint(t, dir, code)
		s := newSpec(t, script)
		require.Equal(t, code, s.Launch(context.Background()))
	}
}

func TestStdinStaysWithParent(t *testing.T) {
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Skip("shell script entry point")
	}
	script := filepath.Join(dir, "train_sst2")
	inFile := filepath.Join(dir, "stdin.txt")
	body := "#!/bin/sh\ncat > " + inFile + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0755))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("not for the child\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	s := newSpec(t, script)
	require.Equal(t, 0, s.Launch(context.Background()))
	got, err := os.ReadFile(inFile)
	require.NoError(t, err)
	require.Empty(t, string(got))
}

func TestStartFailureMapsToOne(t *testing.T) {
	s := Spec{Entrypoint: filepath.Join(t.TempDir(), "missing"), lg: zap.NewNop()}
	require.Equal(t, 1, s.Launch(context.Background()))
}

func TestLookPathFailure(t *testing.T) {
	_, err := SST2(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	require.Error(t, err)
}
