package input

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/entity/plan"
	"github.com/unsap/matsim-berlin-homework/entity/vehicle"
	"github.com/unsap/matsim-berlin-homework/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v2"
)

// Input 输入数据
// 功能：存储回放所需的实体目录数据
// 说明：支持从文件（YAML或JSON）或MongoDB加载
type Input struct {
	Links    []entity.Link
	Vehicles []vehicle.Vehicle // 未配置时为空
	Persons  []plan.Person     // 未配置时为空
}

// Connect 连接MongoDB
// 返回：uri为空时返回nil客户端
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	return client, nil
}

// Init 加载实体目录数据
// 功能：根据配置加载路网、车辆和计划
// 参数：ctx-上下文，c-配置，client-MongoDB客户端（所有输入都来自文件时可以为nil）
// 返回：加载完成的输入数据
// 算法说明：
// 1. 路网数据加载并转换为强类型路段
// 2. 车辆数据加载（可选）
// 3. 计划数据加载（可选）
// 4. 数据验证：计划中引用了路网中不存在的路段的人被忽略
func Init(ctx context.Context, c config.Config, client *mongo.Client) (*Input, error) {
	res := &Input{
		Vehicles: make([]vehicle.Vehicle, 0),
		Persons:  make([]plan.Person, 0),
	}

	linkDocs, err := load(ctx, client, c.Input.Network, func(f *networkFile) []LinkDoc { return f.Links })
	if err != nil {
		return nil, err
	}
	res.Links = make([]entity.Link, 0, len(linkDocs))
	for _, d := range linkDocs {
		l, err := d.ToLink()
		if err != nil {
			return nil, err
		}
		res.Links = append(res.Links, l)
	}

	if c.Input.Vehicles != nil {
		docs, err := load(ctx, client, *c.Input.Vehicles, func(f *vehiclesFile) []VehicleDoc { return f.Vehicles })
		if err != nil {
			return nil, err
		}
		res.Vehicles = lo.Map(docs, func(d VehicleDoc, _ int) vehicle.Vehicle { return d.ToVehicle() })
	}

	if c.Input.Plans != nil {
		docs, err := load(ctx, client, *c.Input.Plans, func(f *plansFile) []PersonDoc { return f.Persons })
		if err != nil {
			return nil, err
		}
		persons := make([]plan.Person, 0, len(docs))
		for _, d := range docs {
			p, err := d.ToPerson()
			if err != nil {
				return nil, err
			}
			persons = append(persons, p)
		}
		res.Persons = filterPersons(res.Links, persons)
		if len(res.Persons) == 0 {
			log.Error("no valid persons to check, please check plans data")
		}
	}
	return res, nil
}

// load 从文件或MongoDB集合加载文档列表
// 参数：unwrap-从文件根结构中取出文档列表
func load[F any, D any](ctx context.Context, client *mongo.Client, path config.InputPath, unwrap func(*F) []D) ([]D, error) {
	log.Infof("start fetching from %s", path)
	var docs []D
	if path.FromFile() {
		file, err := os.ReadFile(path.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		var f F
		if err := yaml.Unmarshal(file, &f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		docs = unwrap(&f)
	} else {
		if client == nil {
			return nil, fmt.Errorf("failed to load %s: no mongo client", path)
		}
		coll := client.Database(path.GetDb()).Collection(path.GetColl())
		cursor, err := coll.Find(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", path, err)
		}
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", path, err)
		}
	}
	log.Infof("finish fetching %d documents from %s", len(docs), path)
	return docs, nil
}
