package sqlinline

const QInsertScheduledPost = `--sql 2d60dff1-882b-4318-b7d0-6ecee6c03862
insert into scheduled_posts (draft_id, account_id, scheduled_at, status, created_at)
values ($1, $2, $3, $4, now())
returning id, draft_id, account_id, scheduled_at, status, created_at;
`

const QSelectScheduledPostByID = `--sql c7c36009-93e0-4dbe-8e83-c963a87f1eb2
select id, draft_id, account_id, scheduled_at, status, created_at
from scheduled_posts
where id = $1;
`

const QListPendingScheduledPosts = `--sql c44094d3-2d94-418c-8bb2-aec34f2bf9b6
select id, draft_id, account_id, scheduled_at, status, created_at
from scheduled_posts
where status = 'pending'
order by scheduled_at asc;
`

const QUpdateScheduledPostStatus = `--sql 2cbb34cb-d949-4629-bc18-68db6c2d51fa
update scheduled_posts
set status = $2
where id = $1;
`
