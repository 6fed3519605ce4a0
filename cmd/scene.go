package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/scene/primitive"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		logger.Error(err)
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("scene information:\n%s", sceneStats(sc.World))
	return nil
}

// Format a table with an entry for each top-level world entity.
func sceneStats(world *scene.World) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Entity", "Type", "Items", "Nodes", "Leaves", "Empty leaves", "Max depth", "Item refs"})

	for index, entity := range world.Entities {
		switch e := entity.(type) {
		case *primitive.Model:
			table.Append(treeStatsRow(e.Name, "model", e.Stats()))
		case *primitive.Group:
			table.Append(treeStatsRow(e.Name, "group", e.Stats()))
		case *primitive.Sphere:
			table.Append(shapeRow(fmt.Sprintf("#%d", index), "sphere"))
		case *primitive.Box:
			table.Append(shapeRow(fmt.Sprintf("#%d", index), "box"))
		default:
			table.Append(shapeRow(fmt.Sprintf("#%d", index), fmt.Sprintf("%T", e)))
		}
	}

	bounds := world.BoundingBox()
	if len(world.Entities) == 0 {
		bounds = scene.AABB{}
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d lights", len(world.Lights)),
		"BOUNDS",
		fmt.Sprintf("%v", bounds.Min), fmt.Sprintf("%v", bounds.Max),
		"", "", "", "",
	})

	table.Render()
	return buf.String()
}

func treeStatsRow(name, kind string, stats kdtree.Stats) []string {
	return []string{
		name,
		kind,
		fmt.Sprintf("%d", stats.Items),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.EmptyLeaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.References),
	}
}

func shapeRow(name, kind string) []string {
	return []string{name, kind, "1", "-", "-", "-", "-", "-"}
}
