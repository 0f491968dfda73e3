package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/corpus"
	"github.com/matsen/bibx/internal/matrix"
	"github.com/matsen/bibx/internal/viz"
)

var (
	matrixUnit     string
	matrixMinOcc   int
	matrixMinCites int
	matrixLocal    bool
	matrixGraph    bool
)

func init() {
	matrixCmd.Flags().StringVar(&matrixUnit, "unit", "author", "Entity: author, country, institution, author_keyword, keyword_plus or reference")
	matrixCmd.Flags().IntVar(&matrixMinOcc, "min-occ", 0, "Prune nodes below this co-occurrence degree (default from config)")
	matrixCmd.Flags().IntVar(&matrixMinCites, "min-citations", 0, "reference unit: keep references cited at least this often")
	matrixCmd.Flags().BoolVar(&matrixLocal, "local-only", false, "reference unit: keep only references resolved to corpus documents")
	matrixCmd.Flags().BoolVar(&matrixGraph, "graph", false, "Emit node+edge graph data instead of an edge list")
	rootCmd.AddCommand(matrixCmd)
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Build a co-occurrence or document-reference matrix",
	Long: `Build the sparse adjacency matrix for one entity type.

Same-entity matrices (author-author, country-country, ...) are
symmetric with a zero diagonal; within one document each pair of
co-occurring entities counts once. The reference unit instead builds
the rectangular document-reference incidence matrix.

Examples:
  bibx matrix --unit author --min-occ 2
  bibx matrix --unit keyword_plus --graph
  bibx matrix --unit reference --local-only`,
	RunE: runMatrix,
}

// MatrixResult is the edge-list response.
type MatrixResult struct {
	Unit  string        `json:"unit"`
	Nodes int           `json:"nodes"`
	Edges []matrix.Edge `json:"edges"`
}

func runMatrix(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	unit, err := corpus.ParseUnit(matrixUnit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if !cmd.Flags().Changed("min-occ") {
		matrixMinOcc = cfg.MinOccurrence
	}

	c := mustLoadCorpus(cfg)

	if unit == corpus.UnitReference {
		return runReferenceMatrix(c)
	}

	ids := c.IDs(unit)
	m := matrix.CoOccurrence(c.PerDoc(unit), ids.Names, matrixMinOcc)

	if matrixGraph {
		g := viz.FromCoOccurrence(m, ids, string(unit))
		if humanOutput {
			outputHuman("%s graph: %d nodes, %d edges\n", unit, len(g.Nodes), len(g.Edges))
			return nil
		}
		return outputJSON(g)
	}

	result := MatrixResult{Unit: string(unit), Nodes: len(m.RowLabels), Edges: m.Edges(true)}
	if humanOutput {
		outputHuman("%s matrix: %d nodes, %d edges\n", unit, result.Nodes, len(result.Edges))
		return nil
	}
	return outputJSON(result)
}

// runReferenceMatrix builds the rectangular document-reference
// incidence matrix. Column labels are reference ids; references
// back-matched to corpus documents carry their document id instead.
func runReferenceMatrix(c *corpus.Corpus) error {
	docLabels := make([]string, c.Table.Len())
	for i := range docLabels {
		docLabels[i] = c.DocID(i).String()
	}

	// Per-doc reference token lists are rewritten onto id labels so
	// the matrix joins back to the entity tables.
	refIDs := c.ReferenceIDs
	idLabels := make([]string, refIDs.Len())
	for i := range idLabels {
		idLabels[i] = c.RefID(i)
	}
	perDoc := make([][]string, len(c.RefsPerDoc))
	for d, refs := range c.RefsPerDoc {
		row := make([]string, 0, len(refs))
		for _, ref := range refs {
			if i := refIDs.Index(ref); i >= 0 {
				row = append(row, idLabels[i])
			}
		}
		perDoc[d] = row
	}

	m := matrix.Incidence(docLabels, perDoc, idLabels, matrix.IncidenceOptions{
		MinCitations: matrixMinCites,
		LocalOnly:    matrixLocal,
		Local: func(label string) bool {
			return strings.HasPrefix(label, corpus.PrefixDocument+"_")
		},
	})

	if matrixGraph {
		g := viz.FromIncidence(m)
		if humanOutput {
			outputHuman("document-reference graph: %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
			return nil
		}
		return outputJSON(g)
	}

	result := MatrixResult{Unit: string(corpus.UnitReference), Nodes: len(m.ColLabels), Edges: m.Edges(false)}
	if humanOutput {
		outputHuman("document-reference matrix: %d documents, %d references, %d cells\n",
			len(m.RowLabels), len(m.ColLabels), m.NNZ())
		return nil
	}
	return outputJSON(result)
}
