package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/ops"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	case "export":
		if err := cmdExport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "export failed:", err)
			os.Exit(1)
		}
	case "import":
		if err := cmdImport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "import failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "growth-tracker-"+ts+".tar.gz")
	}

	if err := ops.BackupDataDir(*dataDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.RestoreDataDir(*archive, *target)
}

// cmdDrill backs up, restores into a scratch dir and verifies the two
// trees hash identically, so a backup is proven restorable before it
// is ever needed.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "growth-tracker-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "growth-tracker-drill-restore-"+ts)

	if err := ops.BackupDataDir(*dataDir, archive); err != nil {
		return err
	}
	if err := ops.RestoreDataDir(archive, restoreDir); err != nil {
		return err
	}

	srcDigest, err := dirDigest(*dataDir)
	if err != nil {
		return err
	}
	restoreDigest, err := dirDigest(restoreDir)
	if err != nil {
		return err
	}
	if srcDigest != restoreDigest {
		return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	fmt.Println("digest:", srcDigest)
	return nil
}

// cmdExport writes the full save as one JSON document, the same shape
// the server's export endpoint produces.
func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", "", "output snapshot path (.json), defaults to stdout")
	st, err := openStoreFlags(fs, args)
	if err != nil {
		return err
	}
	defer st.Close()

	dump, err := store.Export(st)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(b))
		return nil
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	in := fs.String("in", "", "input snapshot path (.json)")
	st, err := openStoreFlags(fs, args)
	if err != nil {
		return err
	}
	defer st.Close()

	if *in == "" {
		return fmt.Errorf("in is required")
	}
	b, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	var dump store.Dump
	if err := json.Unmarshal(b, &dump); err != nil {
		return err
	}
	if err := store.Import(st, dump); err != nil {
		return err
	}
	fmt.Printf("imported %d documents\n", len(dump))
	return nil
}

func openStoreFlags(fs *flag.FlagSet, args []string) (store.Store, error) {
	backend := fs.String("backend", "file", "store backend: file or sqlite")
	dataDir := fs.String("data-dir", "data", "data directory for the file backend")
	dbPath := fs.String("db", "data/growth-tracker.db", "database path for the sqlite backend")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch *backend {
	case "sqlite":
		return store.OpenSQLite(*dbPath)
	case "file":
		return store.NewFileStore(*dataDir)
	default:
		return nil, fmt.Errorf("unknown backend: %s", *backend)
	}
}

func dirDigest(root string) (string, error) {
	root = filepath.Clean(root)
	entries := []string{}
	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	}); err != nil {
		return "", err
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, rel := range entries {
		_, _ = io.WriteString(h, rel)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", err
		}
		if _, err := h.Write(b); err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  tracker-ops backup  --data-dir data --out backups/backup.tar.gz")
	fmt.Println("  tracker-ops restore --archive backups/backup.tar.gz --target-dir data-restored")
	fmt.Println("  tracker-ops drill   --data-dir data --work-dir /tmp")
	fmt.Println("  tracker-ops export  --backend file --data-dir data --out snapshot.json")
	fmt.Println("  tracker-ops import  --backend sqlite --db data/growth-tracker.db --in snapshot.json")
	fmt.Println("")
	fmt.Println("flag order matters: flags must follow the subcommand")
}
