// Command dersb is the offline ingestion tool: it pulls a YouTube playlist,
// classifies its videos into curriculum topics, and writes the content pack
// the app imports statically.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/burkiv/dersb/classify"
	"github.com/burkiv/dersb/content"
	"github.com/burkiv/dersb/ingest"
	"github.com/burkiv/dersb/youtube"
)

var (
	playlistID     string
	courseID       string
	instructorName string
	description    string
	outputPath     string
	rulesPath      string
	apiKey         string
)

var rootCmd = &cobra.Command{
	Use:   "dersb",
	Short: "Study-content ingestion for the dersb app",
	Long: `dersb fetches YouTube playlist metadata, classifies videos into
curriculum topics, and writes per-instructor content packs as JSON.`,
	SilenceErrors: true,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and classify a single playlist",
	Example: `  dersb fetch --playlist PLxxxxxx --course tarih --instructor "Ramazan Yetgin" \
    --description "Detaylı Anlatım"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flags are validated by now; usage output stays reserved for
		// flag and argument mistakes, not runtime failures.
		cmd.SilenceUsage = true

		catalog, classifier, err := buildPipeline(cmd.Context())
		if err != nil {
			return err
		}
		return runJob(cmd.Context(), catalog, classifier, ingest.Job{
			PlaylistID:  playlistID,
			CourseID:    courseID,
			SourceName:  instructorName,
			Description: description,
			OutputPath:  outputPath,
		})
	},
}

// batchFile is the YAML shape consumed by the batch subcommand.
type batchFile struct {
	Jobs []struct {
		Playlist    string `yaml:"playlist"`
		Course      string `yaml:"course"`
		Instructor  string `yaml:"instructor"`
		Description string `yaml:"description"`
		Output      string `yaml:"output"`
	} `yaml:"jobs"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <jobs.yaml>",
	Short: "Run every fetch job listed in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read batch file: %w", err)
		}
		var batch batchFile
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return fmt.Errorf("parse batch file %s: %w", args[0], err)
		}
		if len(batch.Jobs) == 0 {
			return fmt.Errorf("batch file %s lists no jobs", args[0])
		}

		catalog, classifier, err := buildPipeline(cmd.Context())
		if err != nil {
			return err
		}

		for _, j := range batch.Jobs {
			job := ingest.Job{
				PlaylistID:  j.Playlist,
				CourseID:    j.Course,
				SourceName:  j.Instructor,
				Description: j.Description,
				OutputPath:  j.Output,
			}
			if err := runJob(cmd.Context(), catalog, classifier, job); err != nil {
				return fmt.Errorf("job %s/%s: %w", j.Course, j.Instructor, err)
			}
		}
		return nil
	},
}

// buildPipeline resolves credentials and constructs the catalog client and
// classifier shared by both subcommands.
func buildPipeline(ctx context.Context) (youtube.Catalog, *classify.Classifier, error) {
	if apiKey == "" {
		apiKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("YOUTUBE_API_KEY not found: add it to .env, set the environment variable, or pass --api-key")
	}

	catalog, err := youtube.NewAPICatalog(ctx, apiKey)
	if err != nil {
		return nil, nil, err
	}

	classifier := classify.NewDefault()
	if rulesPath != "" {
		tables, err := classify.LoadRulesFile(rulesPath)
		if err != nil {
			return nil, nil, err
		}
		classifier = classify.New(tables)
	}
	return catalog, classifier, nil
}

// runJob executes one ingestion job, writes the pack artifact, and prints
// the classification report.
func runJob(ctx context.Context, catalog youtube.Catalog, classifier *classify.Classifier, job ingest.Job) error {
	log.Printf("ingest: fetching playlist %s for course %s (%s)", job.PlaylistID, job.CourseID, job.SourceName)

	pack, err := ingest.New(catalog, classifier).Run(ctx, job)
	if err != nil {
		return err
	}

	outPath := job.Output()
	if err := content.WritePackFile(outPath, pack); err != nil {
		return err
	}

	stats := ingest.CollectStats(pack.Instructor.Videos)
	printStats(stats, pack.Instructor.VideoCount)

	log.Printf("ingest: wrote %s (%d videos)", outPath, pack.Instructor.VideoCount)
	return nil
}

func printStats(stats ingest.Stats, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "TOPIC\tVIDEOS\n")
	for _, topicID := range stats.Topics() {
		fmt.Fprintf(w, "%s\t%d\n", topicID, stats.ByTopic[topicID])
	}
	if stats.Unmatched > 0 {
		fmt.Fprintf(w, "(unmatched)\t%d\n", stats.Unmatched)
	}
	fmt.Fprintf(w, "total\t%d\n", total)
	w.Flush()
}

func init() {
	fetchCmd.Flags().StringVar(&playlistID, "playlist", "", "YouTube playlist ID (required)")
	fetchCmd.Flags().StringVar(&courseID, "course", "", "course ID: tarih, turkce, matematik, vatandaslik, cografya (required)")
	fetchCmd.Flags().StringVar(&instructorName, "instructor", "", "instructor/source name (required)")
	fetchCmd.Flags().StringVar(&description, "description", "", "source description")
	fetchCmd.Flags().StringVar(&outputPath, "output", "", "output file (default data/<course>_<instructor-slug>.json)")
	fetchCmd.MarkFlagRequired("playlist")
	fetchCmd.MarkFlagRequired("course")
	fetchCmd.MarkFlagRequired("instructor")

	for _, cmd := range []*cobra.Command{fetchCmd, batchCmd} {
		cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file overriding the built-in topic rules")
		cmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key (default $YOUTUBE_API_KEY)")
	}

	rootCmd.AddCommand(fetchCmd, batchCmd)
}

func main() {
	// .env is optional; environment variables win when both are present.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
